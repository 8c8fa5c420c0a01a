package team

import (
	"gorm.io/gorm"

	"github.com/okayr/okayr-api/internal/notify"
)

type TeamContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewTeamContainer(db *gorm.DB, objectives ObjectiveCounter, notifier notify.Notifier) *TeamContainer {
	repo := NewRepository(db)
	service := NewService(repo, objectives, notifier)
	handler := NewHandler(service)

	return &TeamContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
