package user

import (
	"net/http"

	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Create an account and log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account"
// @Success 201 {object} TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req RegisterRequest
	if err := util.DecodeJSON(r, &req, false); err != nil {
		log.WithError(err).Warn("Invalid register body")
		config.Error(w, err)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	auth.SetSessionCookie(w, resp.AccessToken, auth.TokenTTL())
	config.JSON(w, http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req LoginRequest
	if err := util.DecodeJSON(r, &req, false); err != nil {
		log.WithError(err).Warn("Invalid login body")
		config.Error(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		config.Error(w, err)
		return
	}
	auth.SetSessionCookie(w, resp.AccessToken, auth.TokenTTL())
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	resp, err := h.service.Me(r.Context(), userID)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	var p ProfileUpdate
	if err := util.DecodeJSON(r, &p, false); err != nil {
		config.Error(w, err)
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), userID, p)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ConnectCalendar(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}

	var t CalendarTokens
	if err := util.DecodeJSON(r, &t, false); err != nil {
		config.Error(w, err)
		return
	}

	resp, err := h.service.ConnectCalendar(r.Context(), userID, t)
	if err != nil {
		config.Error(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) DisconnectCalendar(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, err)
		return
	}
	if err := h.service.DisconnectCalendar(r.Context(), userID); err != nil {
		config.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
