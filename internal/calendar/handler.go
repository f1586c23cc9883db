package calendar

import (
	"net/http"

	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

type Handler struct {
	service CalendarService
}

func NewHandler(s CalendarService) *Handler {
	return &Handler{service: s}
}

// Sync godoc
// @Summary Push a training plan's workouts to Google Calendar
// @Tags training
// @Produce json
// @Param id path string true "Training plan ID"
// @Success 200 {object} SyncResult
// @Failure 400 {object} map[string]string
// @Router /training/plans/{id}/calendar-sync [post]
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
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

	res, err := h.service.Sync(r.Context(), userID, planID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}
