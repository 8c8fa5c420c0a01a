package objective

import (
	"github.com/okayr/okayr-api/internal/notify"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service *Service
	Repo    *Repository
}

func NewContainer(db *gorm.DB, cycles ActiveCycleSource, teams TeamSource, notifier notify.Notifier) *Container {
	repo := NewRepository(db)
	service := NewService(repo, cycles, teams, notifier)
	return &Container{
		Handler: NewHandler(service),
		Service: service,
		Repo:    repo,
	}
}
