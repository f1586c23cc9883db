package goal

import (
	"time"

	"github.com/saulo-duarte/atarax-lambda/internal/planner"
	"github.com/saulo-duarte/atarax-lambda/internal/training"
	"github.com/saulo-duarte/atarax-lambda/internal/user"
	"gorm.io/gorm"
)

type GoalContainer struct {
	Repository Repository
	Service    Service
	Handler    *Handler
}

func NewGoalContainer(
	db *gorm.DB,
	trainingContainer *training.TrainingContainer,
	userRepo user.UserRepository,
	synth *planner.Synthesizer,
	staleAfter time.Duration,
) *GoalContainer {
	repo := NewRepository(db, trainingContainer.Repository)
	service := NewService(
		repo,
		trainingContainer.Repository,
		trainingContainer.Service,
		userRepo,
		synth,
		staleAfter,
	)
	handler := NewHandler(service)

	return &GoalContainer{
		Repository: repo,
		Service:    service,
		Handler:    handler,
	}
}
