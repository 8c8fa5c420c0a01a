package admin

import (
	"github.com/okayr/okayr-api/internal/mail"
	"github.com/okayr/okayr-api/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service *Service
}

func NewContainer(db *gorm.DB, users user.Repository, mailer mail.Mailer) *Container {
	service := NewService(db, users, mailer)
	return &Container{
		Handler: NewHandler(service),
		Service: service,
	}
}
