package training

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
)

// Routes mounts the training endpoints. calendarSync is optional and is only
// registered when calendar sync is configured.
func Routes(h *Handler, calendarSync http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/plans", h.ListPlans)
	r.Get("/plans/{id}", h.GetPlan)
	if calendarSync != nil {
		r.Post("/plans/{id}/calendar-sync", calendarSync)
	}

	r.Get("/workouts", h.ListWorkouts)
	r.Get("/workouts/current", h.CurrentWorkouts)
	r.Get("/workouts/{id}", h.GetWorkout)
	r.Put("/workouts/{id}/complete", h.CompleteWorkout)

	r.Get("/feedback", h.FeedbackSummary)
	return r
}
