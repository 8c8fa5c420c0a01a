package cycle

import (
	"gorm.io/gorm"

	"github.com/okayr/okayr-api/internal/notify"
)

type CycleContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewCycleContainer(db *gorm.DB, objectives ObjectiveCounter, notifier notify.Notifier) *CycleContainer {
	repo := NewRepository(db)
	service := NewService(repo, objectives, notifier)
	handler := NewHandler(service)

	return &CycleContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
