package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Post("/answers/{id}", h.UpdateAnswer)
		r.Post("/advance", h.Advance)
		r.Post("/retreat", h.Retreat)
		r.Post("/submit", h.Submit)
		r.Post("/close", h.CloseSession)
		r.Route("/gallery", func(r chi.Router) {
			r.Post("/open", h.OpenGallery)
			r.Post("/close", h.CloseGallery)
			r.Post("/pop", h.PopMoment)
			r.Post("/reset", h.ResetStack)
		})
	})
}
