package user

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
)

// AuthRoutes are the public login endpoints.
func AuthRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", auth.NewHandler().Logout)
	return r
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/me", h.GetUser)
	r.Put("/me/profile", h.UpdateProfile)
	r.Put("/me/calendar", h.ConnectCalendar)
	r.Delete("/me/calendar", h.DisconnectCalendar)
	return r
}
