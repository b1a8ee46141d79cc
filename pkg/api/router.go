package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, h)
}

func applyRoutes(r chi.Router, h *Handler) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", h.getBoard)
		r.Get("/healthz", h.getHealth)
		r.Get("/api/tickets", h.getTickets)
		r.Post("/tickets/{id}/move", h.postMove)
	})

	return r
}
