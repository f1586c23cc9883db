package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/atarax-lambda/internal/calendar"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/goal"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/middlewares"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler     *user.Handler
	GoalHandler     *goal.Handler
	TrainingHandler *training.Handler
	// CalendarHandler is nil when calendar sync is not configured.
	CalendarHandler *calendar.Handler

	CORSOrigins []string
	Metrics     *metrics.Manager
	Registry    *prometheus.Registry
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.CORSOrigins))
	r.Use(middlewares.RequestMetrics(cfg.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var calendarSync http.HandlerFunc
	if cfg.CalendarHandler != nil {
		calendarSync = cfg.CalendarHandler.Sync
	}

	r.Mount("/auth", user.AuthRoutes(cfg.UserHandler))
	r.Mount("/users", user.Routes(cfg.UserHandler))
	r.Mount("/goals", goal.Routes(cfg.GoalHandler))
	r.Mount("/training", training.Routes(cfg.TrainingHandler, calendarSync))
	return r
}
