package calendar

import (
	"github.com/okayr/okayr-api/internal/notify"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service *Service
	Repo    *Repository
}

func NewContainer(db *gorm.DB, notifier notify.Notifier) *Container {
	repo := NewRepository(db)
	service := NewService(repo, notifier)
	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
