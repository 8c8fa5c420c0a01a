package calendar

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/notify"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrValidation   = errors.New("invalid calendar settings")
)

type Service struct {
	repo     *Repository
	notifier notify.Notifier
	validate *validator.Validate
}

func NewService(repo *Repository, notifier notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, validate: validator.New()}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

// GetSettings returns the caller's settings, falling back to defaults when
// nothing has been saved yet.
func (s *Service) GetSettings(ctx context.Context) (*CalendarSettings, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, ErrSettingsNotFound) {
		return &CalendarSettings{
			UserID:     userID,
			Frequency:  FrequencyWeekly,
			CheckInDay: 0,
		}, nil
	}
	return settings, err
}

func (s *Service) SaveSettings(ctx context.Context, dto *SettingsDTO) (*CalendarSettings, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(dto); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	settings := &CalendarSettings{
		UserID:         userID,
		Frequency:      dto.Frequency,
		CheckInDay:     dto.CheckInDay,
		EvaluationDate: dto.EvaluationDate,
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewCalendar)
	return s.repo.GetByUser(ctx, userID)
}
