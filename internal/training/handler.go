package training

import (
	"net/http"

	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ListPlans godoc
// @Summary List the user's training plans
// @Tags training
// @Produce json
// @Success 200 {array} TrainingPlan
// @Router /training/plans [get]
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	plans, err := h.service.ListPlans(r.Context(), userID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, plans)
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	planID, err := util.PathUUID(r, "id")
	if err != nil {
		config.Error(w, err)
		return
	}

	detail, err := h.service.GetPlan(r.Context(), userID, planID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

// ListWorkouts godoc
// @Summary List workouts, optionally for one week
// @Tags training
// @Produce json
// @Param week query int false "Week number"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 500)"
// @Success 200 {array} Workout
// @Router /training/workouts [get]
func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	q := WorkoutQuery{PlanID: r.URL.Query().Get("plan_id")}
	if q.Week, err = util.QueryInt(r, "week"); err != nil {
		log.WithError(err).Warn("Invalid week filter")
		config.Error(w, err)
		return
	}
	skip, err := util.QueryInt(r, "skip")
	if err != nil {
		config.Error(w, err)
		return
	}
	limit, err := util.QueryInt(r, "limit")
	if err != nil {
		config.Error(w, err)
		return
	}
	if skip != nil {
		q.Skip = *skip
	}
	if limit != nil {
		q.Limit = *limit
	}

	workouts, err := h.service.ListWorkouts(r.Context(), userID, q)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, workouts)
}

func (h *Handler) CurrentWorkouts(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	current, err := h.service.CurrentWeek(r.Context(), userID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, current)
}

func (h *Handler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	workoutID, err := util.PathUUID(r, "id")
	if err != nil {
		config.Error(w, err)
		return
	}

	workout, err := h.service.GetWorkout(r.Context(), userID, workoutID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, workout)
}

// CompleteWorkout godoc
// @Summary Mark a workout complete, optionally with feedback
// @Tags training
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param feedback body Feedback false "Completion feedback"
// @Success 200 {object} CompletionResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /training/workouts/{id}/complete [put]
func (h *Handler) CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	workoutID, err := util.PathUUID(r, "id")
	if err != nil {
		config.Error(w, err)
		return
	}

	var fb Feedback
	if err := util.DecodeJSON(r, &fb, true); err != nil {
		log.WithError(err).Warn("Invalid completion body")
		config.Error(w, err)
		return
	}

	result, err := h.service.CompleteWorkout(r.Context(), userID, workoutID, &fb)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) FeedbackSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	summary, err := h.service.FeedbackSummary(r.Context(), userID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, summary)
}
