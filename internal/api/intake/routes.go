package intake

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers intake routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/start", h.StartIntake)
	r.Post("/respond", h.SubmitResponse)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/{user_id}/result", h.ExportResult)
	})
}
