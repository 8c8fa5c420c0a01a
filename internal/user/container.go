package user

import (
	"gorm.io/gorm"

	"github.com/okayr/okayr-api/internal/mail"
)

type UserContainer struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewUserContainer(db *gorm.DB, mailer mail.Mailer) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, mailer)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
