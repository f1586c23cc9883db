package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/goal"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/planner"
	"github.com/saulo-duarte/atarax-lambda/internal/router"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	util "github.com/saulo-duarte/atarax-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	auth.Init("segredo-de-teste-longo-o-suficiente", time.Hour)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&user.User{},
		&goal.Goal{},
		&training.TrainingPlan{},
		&training.Workout{},
		&training.WorkoutLog{},
	))

	reg := prometheus.NewRegistry()
	m := metrics.NewManager(reg)
	users := user.NewUserContainer(db)
	trainingContainer := training.NewTrainingContainer(db, m)
	synth := planner.NewSynthesizer(planner.NewTemplateProvider(), time.Minute, m)
	goals := goal.NewGoalContainer(db, trainingContainer, users.Repo, synth, 15*time.Minute)

	return router.New(router.RouterConfig{
		UserHandler:     users.Handler,
		GoalHandler:     goals.Handler,
		TrainingHandler: trainingContainer.Handler,
		CORSOrigins:     []string{"http://localhost:3000"},
		Metrics:         m,
		Registry:        reg,
	})
}

type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestHealthAndAuth(t *testing.T) {
	c := &client{t: t, h: newServer(t)}

	rec := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, path := range []string{"/goals", "/goals/dashboard", "/training/plans", "/users/me"} {
		rec := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec = c.do(http.MethodPost, "/training/plans/"+"00000000-0000-0000-0000-000000000000"+"/calendar-sync", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGoalToCompletedWorkout(t *testing.T) {
	c := &client{t: t, h: newServer(t)}

	rec := c.do(http.MethodPost, "/auth/register", user.RegisterRequest{
		Email:    "ivo@example.com",
		Username: "ivo",
		Password: "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c.token = decode[user.TokenResponse](t, rec).AccessToken

	event := util.DateOf(time.Now()).AddDays(70)
	rec = c.do(http.MethodPost, "/goals", goal.CreateGoalRequest{
		Title:     "Half marathon",
		GoalType:  goal.TypeHalfMarathon,
		EventDate: &event,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	assert.NotContains(t, created, "generation_error")
	assert.Greater(t, created["workout_count"], 0.0)
	g := created["goal"].(map[string]any)
	goalID := g["id"].(string)
	assert.Equal(t, "planning", g["status"])
	assert.Equal(t, 10.0, g["total_weeks"])

	rec = c.do(http.MethodPost, "/goals/"+goalID+"/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = c.do(http.MethodPost, "/goals/"+goalID+"/activate", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/training/workouts/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode[training.CurrentWeek](t, rec)
	assert.True(t, current.HasTrainingPlan)
	assert.Equal(t, 1, current.Week)
	require.NotEmpty(t, current.Workouts)

	path := "/training/workouts/" + current.Workouts[0].ID.String() + "/complete"
	rec = c.do(http.MethodPut, path, map[string]int{"perceived_exertion": 6})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	done := decode[training.CompletionResult](t, rec)
	assert.False(t, done.AlreadyCompleted)
	assert.Equal(t, int64(1), done.CompletedWorkouts)

	rec = c.do(http.MethodPut, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[training.CompletionResult](t, rec).AlreadyCompleted)

	rec = c.do(http.MethodGet, "/goals/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[map[string]any](t, rec)
	assert.Equal(t, true, dash["has_active_goal"])
	assert.Equal(t, 1.0, dash["completed_this_week"])

	rec = c.do(http.MethodDelete, "/goals/"+goalID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodGet, "/training/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]training.TrainingPlan](t, rec))

	rec = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "atarax_http_requests_total")
	assert.True(t, strings.Contains(body, `atarax_plan_synthesis_total{outcome="success"} 1`), body)
	assert.Contains(t, body, "atarax_workouts_completed_total 1")
}
