package submit

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the submission boundary route
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/submit", h.Submit)
}
