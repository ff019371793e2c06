package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/disckocrip/retro-backend/internal/entity"
	"github.com/disckocrip/retro-backend/internal/pkg/logger"
	"github.com/disckocrip/retro-backend/internal/pkg/response"
	"github.com/disckocrip/retro-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	controller Controller
	validator  *validator.Validator
}

func NewHandler(controller Controller, validator *validator.Validator) *Handler {
	return &Handler{
		controller: controller,
		validator:  validator,
	}
}

// GetState handles GET /api/session - current session view
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.controller.State())
}

// UpdateAnswer handles POST /api/session/answers/{id} - record one answer
func (h *Handler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateAnswer")
	questionID := chi.URLParam(r, "id")

	var req entity.UpdateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateUpdateAnswer(questionID, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	var err error
	if req.Rating != nil {
		err = h.controller.SetRating(questionID, *req.Rating)
	} else {
		err = h.controller.SetText(questionID, *req.Text)
	}
	if err != nil {
		h.handleControllerError(ctx, w, err)
		return
	}

	response.Success(w, h.controller.State())
}

// Advance handles POST /api/session/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "Advance"), w, h.controller.Advance)
}

// Retreat handles POST /api/session/retreat
func (h *Handler) Retreat(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "Retreat"), w, h.controller.Retreat)
}

// Submit handles POST /api/session/submit - finalize and deliver answers
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Submit")

	messageID, err := h.controller.Submit(r.Context())
	if err != nil {
		if errors.Is(err, entity.ErrSessionClosed) || errors.Is(err, entity.ErrAlreadySubmitted) {
			h.handleControllerError(ctx, w, err)
			return
		}
		ctxzap.Error(ctx, "submission failed", zap.Error(err))
		response.JSON(w, http.StatusInternalServerError, entity.SubmitErrorResponse{
			Error:   "Failed to send email",
			Details: err.Error(),
		})
		return
	}

	response.Success(w, entity.SubmitResponse{Success: true, MessageID: messageID})
}

// OpenGallery handles POST /api/session/gallery/open
func (h *Handler) OpenGallery(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "OpenGallery"), w, h.controller.OpenGallery)
}

// CloseGallery handles POST /api/session/gallery/close
func (h *Handler) CloseGallery(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "CloseGallery"), w, h.controller.CloseGallery)
}

// PopMoment handles POST /api/session/gallery/pop - dismiss the top card
func (h *Handler) PopMoment(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "PopMoment"), w, h.controller.PopMoment)
}

// ResetStack handles POST /api/session/gallery/reset
func (h *Handler) ResetStack(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "ResetStack"), w, h.controller.ResetStack)
}

// CloseSession handles POST /api/session/close - the terminal walk-away
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	h.mutate(logger.WithAction(r.Context(), "CloseSession"), w, h.controller.WalkAway)
}

// mutate runs a controller operation and responds with the updated state.
func (h *Handler) mutate(ctx context.Context, w http.ResponseWriter, op func() error) {
	if err := op(); err != nil {
		h.handleControllerError(ctx, w, err)
		return
	}
	response.Success(w, h.controller.State())
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleControllerError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrUnknownQuestion):
		h.respondError(ctx, w, http.StatusNotFound, "question not found", err)
	case errors.Is(err, entity.ErrInvalidRating), errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrSessionClosed), errors.Is(err, entity.ErrAlreadySubmitted), errors.Is(err, entity.ErrNotSubmitted):
		h.respondError(ctx, w, http.StatusConflict, "invalid session state", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
