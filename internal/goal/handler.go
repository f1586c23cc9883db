package goal

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Create a goal and synthesize its training plan
// @Description Blocks while the plan is generated. A failed generation still
// @Description creates the goal (in planning) and reports generation_error.
// @Tags goals
// @Accept json
// @Produce json
// @Param body body CreateGoalRequest true "Goal"
// @Success 201 {object} CreateResult
// @Failure 400 {object} map[string]string
// @Router /goals [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	var req CreateGoalRequest
	if err := util.DecodeJSON(r, &req, false); err != nil {
		log.WithError(err).Warn("Invalid goal body")
		config.Error(w, err)
		return
	}

	result, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, result)
}

// List godoc
// @Summary List the user's goals
// @Tags goals
// @Produce json
// @Param status query string false "Status filter"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 500)"
// @Success 200 {array} GoalSummary
// @Router /goals [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	var q ListQuery
	if s := r.URL.Query().Get("status"); s != "" {
		status := Status(s)
		q.Status = &status
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

	goals, err := h.service.List(r.Context(), userID, q)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.withGoal(w, r, h.service.Get)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := ids(w, r)
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := util.DecodeJSON(r, &req, false); err != nil {
		config.Error(w, err)
		return
	}

	detail, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := ids(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		config.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate godoc
// @Summary Make this the active goal, pausing any other active goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} GoalDetail
// @Failure 409 {object} map[string]string
// @Router /goals/{id}/activate [post]
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.withGoal(w, r, h.service.Activate)
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.withGoal(w, r, h.service.Pause)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.withGoal(w, r, h.service.Cancel)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.withGoal(w, r, h.service.Complete)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	h.withGoal(w, r, h.service.Archive)
}

// GeneratePlan godoc
// @Summary Regenerate the goal's training plan
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 201 {object} PlanResult
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /goals/{id}/plan [post]
func (h *Handler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := ids(w, r)
	if !ok {
		return
	}

	result, err := h.service.GeneratePlan(r.Context(), userID, id)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusCreated, result)
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	detail, err := h.service.Active(r.Context(), userID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

// Dashboard godoc
// @Summary Active goal, plan progress and this week's workouts
// @Tags goals
// @Produce json
// @Success 200 {object} Dashboard
// @Router /goals/dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	d, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, d)
}

func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	days, err := util.QueryInt(r, "days")
	if err != nil {
		config.Error(w, err)
		return
	}

	var n int
	if days != nil {
		n = *days
	}
	goals, err := h.service.Upcoming(r.Context(), userID, n)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, goals)
}

type goalAction func(ctx context.Context, userID, id uuid.UUID) (*GoalDetail, error)

func (h *Handler) withGoal(w http.ResponseWriter, r *http.Request, action goalAction) {
	userID, id, ok := ids(w, r)
	if !ok {
		return
	}

	detail, err := action(r.Context(), userID, id)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, detail)
}

func ids(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := util.PathUUID(r, "id")
	if err != nil {
		config.Error(w, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
