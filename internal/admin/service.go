package admin

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/mail"
	"github.com/okayr/okayr-api/internal/user"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrForbidden = errors.New("admin access required")

const (
	actionActivate   = "user.activate"
	actionDeactivate = "user.deactivate"
	actionDelete     = "user.delete"
)

type Service struct {
	db     *gorm.DB
	users  user.Repository
	mailer mail.Mailer
}

func NewService(db *gorm.DB, users user.Repository, mailer mail.Mailer) *Service {
	return &Service{db: db, users: users, mailer: mailer}
}

func adminID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrForbidden
	}
	if claims.Role != auth.RoleAdmin {
		return uuid.Nil, ErrForbidden
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrForbidden
	}
	return id, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	if _, err := adminID(ctx); err != nil {
		return nil, err
	}

	users, err := s.users.FindAll()
	if err != nil {
		return nil, err
	}

	out := make([]user.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *user.ToResponse(&users[i]))
	}
	return out, nil
}

// SetUserActive flips the activation flag, notifies the user by email and
// leaves an audit trail. The email is best effort.
func (s *Service) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (*user.UserResponse, error) {
	actorID, err := adminID(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	u.IsActive = active
	if err := s.users.Update(u); err != nil {
		return nil, err
	}

	action := actionDeactivate
	if active {
		action = actionActivate
	}
	s.audit(ctx, actorID, action, userID, map[string]any{
		"username":  u.Username,
		"is_active": active,
	})

	log := config.WithContext(ctx).WithField("user_id", userID)
	if active {
		if err := s.mailer.SendAccountActivated(ctx, u.Email, u.FirstName); err != nil {
			log.WithError(err).Warn("Failed to send activation email")
		}
	} else {
		if err := s.mailer.SendAccountDeactivated(ctx, u.Email, u.FirstName); err != nil {
			log.WithError(err).Warn("Failed to send deactivation email")
		}
	}

	return user.ToResponse(u), nil
}

func (s *Service) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	actorID, err := adminID(ctx)
	if err != nil {
		return err
	}

	u, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(userID); err != nil {
		return err
	}

	s.audit(ctx, actorID, actionDelete, userID, map[string]any{
		"username": u.Username,
		"email":    u.Email,
	})
	return nil
}

func (s *Service) audit(ctx context.Context, actorID uuid.UUID, action string, targetID uuid.UUID, details map[string]any) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}
	entry := AuditLog{
		ID:       uuid.New(),
		AdminID:  actorID,
		Action:   action,
		TargetID: targetID,
		Details:  datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to write audit log")
	}
}
