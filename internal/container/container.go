package container

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/saulo-duarte/atarax-lambda/internal/auth"
	"github.com/saulo-duarte/atarax-lambda/internal/calendar"
	"github.com/saulo-duarte/atarax-lambda/internal/config"
	"github.com/saulo-duarte/atarax-lambda/internal/goal"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/planner"
	"github.com/saulo-duarte/atarax-lambda/internal/router"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
)

type Container struct {
	Settings config.Settings
	Registry *prometheus.Registry
	Metrics  *metrics.Manager

	UserContainer     *user.UserContainer
	TrainingContainer *training.TrainingContainer
	GoalContainer     *goal.GoalContainer
	CalendarContainer *calendar.CalendarContainer
}

func New(ctx context.Context) *Container {
	settings, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load settings")
	}
	config.InitLogger(settings.LogLevel, settings.LogFormat)
	auth.Init(settings.JWTSecret, settings.JWTExpiration)
	config.InitCrypto(settings.CryptoKey)

	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		config.Logger.WithError(err).Fatal("Failed to connect to DB")
	}
	if settings.DBAutoMigrate {
		// Parents first: goals reference users, plans reference goals.
		if err := config.Migrate(config.DB,
			&user.User{},
			&goal.Goal{},
			&training.TrainingPlan{},
			&training.Workout{},
			&training.WorkoutLog{},
		); err != nil {
			config.Logger.WithError(err).Fatal("Failed to migrate DB")
		}
	}

	registry := metrics.SetupPrometheus()
	m := metrics.NewManager(registry)

	provider := newProvider(ctx, settings)
	synth := planner.NewSynthesizer(provider, settings.AITimeout, m)

	userContainer := user.NewUserContainer(config.DB)
	trainingContainer := training.NewTrainingContainer(config.DB, m)
	goalContainer := goal.NewGoalContainer(
		config.DB,
		trainingContainer,
		userContainer.Repo,
		synth,
		settings.GenerationStaleAfter,
	)

	var calendarContainer *calendar.CalendarContainer
	if config.CryptoEnabled() && settings.GoogleClientID != "" {
		calendarContainer = calendar.NewCalendarContainer(calendar.OAuthSettings{
			ClientID:     settings.GoogleClientID,
			ClientSecret: settings.GoogleClientSecret,
			RedirectURL:  settings.GoogleRedirectURL,
		}, userContainer.Repo, trainingContainer.Repository)
	} else {
		config.Logger.Info("Google Calendar sync disabled")
	}

	return &Container{
		Settings:          settings,
		Registry:          registry,
		Metrics:           m,
		UserContainer:     userContainer,
		TrainingContainer: trainingContainer,
		GoalContainer:     goalContainer,
		CalendarContainer: calendarContainer,
	}
}

// Handler builds the HTTP router over the wired features.
func (c *Container) Handler() http.Handler {
	cfg := router.RouterConfig{
		UserHandler:     c.UserContainer.Handler,
		GoalHandler:     c.GoalContainer.Handler,
		TrainingHandler: c.TrainingContainer.Handler,
		CORSOrigins:     c.Settings.CORSOrigins,
		Metrics:         c.Metrics,
		Registry:        c.Registry,
	}
	if c.CalendarContainer != nil {
		cfg.CalendarHandler = c.CalendarContainer.Handler
	}
	return router.New(cfg)
}

// newProvider picks the plan generator. Without a Gemini key the service
// still works with the rule based template generator.
func newProvider(ctx context.Context, s config.Settings) planner.Provider {
	if s.AIProvider == "template" || s.GeminiAPIKey == "" {
		config.Logger.WithField("ai_provider", "template").Info("Using template plan generator")
		return planner.NewTemplateProvider()
	}

	p, err := planner.NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to create Gemini client")
	}
	config.Logger.WithField("model", s.GeminiModel).Info("Using Gemini plan generator")
	return p
}
