package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/active", h.Active)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/upcoming", h.Upcoming)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)

		r.Post("/activate", h.Activate)
		r.Post("/pause", h.Pause)
		r.Post("/cancel", h.Cancel)
		r.Post("/complete", h.Complete)
		r.Post("/archive", h.Archive)
		r.Post("/plan", h.GeneratePlan)
	})
	return r
}
