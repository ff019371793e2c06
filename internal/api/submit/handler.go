// Package submit exposes the raw submission boundary: POST /submit with an
// ordered list of answer strings, answered with the delivery outcome.
package submit

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/disckocrip/retro-backend/internal/entity"
	"github.com/disckocrip/retro-backend/internal/pkg/logger"
	"github.com/disckocrip/retro-backend/internal/pkg/response"
	"github.com/disckocrip/retro-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Sender delivers an ordered answer list, returning a message ID.
type Sender interface {
	Submit(ctx context.Context, answers []string) (messageID string, err error)
}

type Handler struct {
	sender    Sender
	validator *validator.Validator
}

func NewHandler(sender Sender, validator *validator.Validator) *Handler {
	return &Handler{
		sender:    sender,
		validator: validator,
	}
}

// Submit handles POST /submit - render the answers and email them
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Submit")

	var req entity.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Debug(ctx, "failed to decode request body", zap.Error(err))
		response.JSON(w, http.StatusBadRequest, entity.SubmitErrorResponse{Error: "Missing answers"})
		return
	}

	if err := h.validator.ValidateSubmit(&req); err != nil {
		ctxzap.Debug(ctx, "failed to validate request", zap.Error(err))
		response.JSON(w, http.StatusBadRequest, entity.SubmitErrorResponse{Error: "Missing answers"})
		return
	}

	messageID, err := h.sender.Submit(ctx, req.Answers)
	if err != nil {
		ctxzap.Error(ctx, "failed to send answers email", zap.Error(err))
		response.JSON(w, http.StatusInternalServerError, entity.SubmitErrorResponse{
			Error:   "Failed to send email",
			Details: err.Error(),
		})
		return
	}

	ctxzap.Info(ctx, "answers email sent", zap.String("message_id", messageID))
	response.Success(w, entity.SubmitResponse{Success: true, MessageID: messageID})
}
