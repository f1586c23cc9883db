package training

import (
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"gorm.io/gorm"
)

type TrainingContainer struct {
	Repository Repository
	Service    Service
	Handler    *Handler
}

func NewTrainingContainer(db *gorm.DB, m *metrics.Manager) *TrainingContainer {
	repo := NewRepository(db)
	recorder := NewRecorder(db, repo, m)
	service := NewService(repo, recorder)
	handler := NewHandler(service)

	return &TrainingContainer{
		Repository: repo,
		Service:    service,
		Handler:    handler,
	}
}
