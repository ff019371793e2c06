package validator

import (
	"fmt"

	"github.com/disckocrip/retro-backend/internal/entity"
)

// Validator checks incoming requests against the question catalog before
// they reach the session controller.
type Validator struct {
	catalog *entity.Catalog
}

func NewValidator(catalog *entity.Catalog) *Validator {
	return &Validator{catalog: catalog}
}

// ValidateUpdateAnswer validates an answer update: exactly one of rating or
// text must be present, and it must match the question kind.
func (v *Validator) ValidateUpdateAnswer(questionID string, req *entity.UpdateAnswerRequest) error {
	if req.Rating == nil && req.Text == nil {
		return fmt.Errorf("%w: rating or text", entity.ErrMissingField)
	}
	if req.Rating != nil && req.Text != nil {
		return fmt.Errorf("%w: rating and text must not be both set", entity.ErrInvalidParameter)
	}

	if req.Rating != nil {
		if _, ok := v.catalog.RatingByID(questionID); !ok {
			return fmt.Errorf("%w: %q is not a rating question", entity.ErrUnknownQuestion, questionID)
		}
		return nil
	}

	if _, ok := v.catalog.OpenByID(questionID); !ok {
		return fmt.Errorf("%w: %q is not an open-ended question", entity.ErrUnknownQuestion, questionID)
	}
	return nil
}

// ValidateSubmit validates the raw submission boundary body.
func (v *Validator) ValidateSubmit(req *entity.SubmitRequest) error {
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: answers", entity.ErrMissingField)
	}
	return nil
}
