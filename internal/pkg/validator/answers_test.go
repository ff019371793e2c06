package validator

import (
	"errors"
	"testing"

	"github.com/disckocrip/retro-backend/internal/entity"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestValidateUpdateAnswer(t *testing.T) {
	v := NewValidator(entity.DefaultCatalog())

	tests := []struct {
		name       string
		questionID string
		req        entity.UpdateAnswerRequest
		wantErr    error
	}{
		{
			name:       "valid rating",
			questionID: "comm",
			req:        entity.UpdateAnswerRequest{Rating: intPtr(7)},
		},
		{
			name:       "valid text",
			questionID: "lessons",
			req:        entity.UpdateAnswerRequest{Text: strPtr("багато")},
		},
		{
			name:       "neither field",
			questionID: "comm",
			req:        entity.UpdateAnswerRequest{},
			wantErr:    entity.ErrMissingField,
		},
		{
			name:       "both fields",
			questionID: "comm",
			req:        entity.UpdateAnswerRequest{Rating: intPtr(7), Text: strPtr("hi")},
			wantErr:    entity.ErrInvalidParameter,
		},
		{
			name:       "rating for open-ended question",
			questionID: "lessons",
			req:        entity.UpdateAnswerRequest{Rating: intPtr(7)},
			wantErr:    entity.ErrUnknownQuestion,
		},
		{
			name:       "text for rating question",
			questionID: "comm",
			req:        entity.UpdateAnswerRequest{Text: strPtr("hi")},
			wantErr:    entity.ErrUnknownQuestion,
		},
		{
			name:       "unknown question id",
			questionID: "nope",
			req:        entity.UpdateAnswerRequest{Rating: intPtr(7)},
			wantErr:    entity.ErrUnknownQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdateAnswer(tt.questionID, &tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmit(t *testing.T) {
	v := NewValidator(entity.DefaultCatalog())

	if err := v.ValidateSubmit(&entity.SubmitRequest{}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("empty answers: error = %v, want ErrMissingField", err)
	}
	if err := v.ValidateSubmit(&entity.SubmitRequest{Answers: []string{"a"}}); err != nil {
		t.Errorf("non-empty answers: %v", err)
	}
}
