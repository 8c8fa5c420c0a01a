package cycle

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/notify"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrCycleHasObjectives = errors.New("cycle has assigned objectives")
)

// ObjectiveCounter reports how many objectives still reference a cycle;
// satisfied by the objective repository.
type ObjectiveCounter interface {
	CountByCycleID(cycleID uuid.UUID) (int64, error)
}

type Service interface {
	ListCycles(ctx context.Context) ([]OkrCycle, error)
	CreateCycle(ctx context.Context, dto CreateCycleDTO) (*OkrCycle, error)
	UpdateCycle(ctx context.Context, dto UpdateCycleDTO) (*OkrCycle, error)
	DeleteCycle(ctx context.Context, id string) error
	GetActiveCycle(ctx context.Context) (*OkrCycle, error)
	SetActiveCycle(ctx context.Context, dto SetActiveCycleDTO) error
}

type service struct {
	repo       Repository
	objectives ObjectiveCounter
	notifier   notify.Notifier
	validate   *validator.Validate
}

func NewService(repo Repository, objectives ObjectiveCounter, notifier notify.Notifier) Service {
	return &service{
		repo:       repo,
		objectives: objectives,
		notifier:   notifier,
		validate:   validator.New(),
	}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *service) ListCycles(ctx context.Context) ([]OkrCycle, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(userID)
}

func (s *service) CreateCycle(ctx context.Context, dto CreateCycleDTO) (*OkrCycle, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, ErrValidation
	}
	if !dto.StartDate.Before(dto.EndDate) {
		return nil, ErrInvalidDateRange
	}

	c := OkrCycle{
		ID:        uuid.New(),
		Name:      dto.Name,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		OwnerID:   userID,
	}

	if err := s.repo.Create(&c); err != nil {
		log.WithError(err).Error("Failed to create okr cycle")
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewCycles)
	log.WithField("cycle_id", c.ID).Info("Okr cycle created")
	return &c, nil
}

func (s *service) UpdateCycle(ctx context.Context, dto UpdateCycleDTO) (*OkrCycle, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, ErrValidation
	}
	if !dto.StartDate.Before(dto.EndDate) {
		return nil, ErrInvalidDateRange
	}

	c, err := s.repo.FindByID(dto.ID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	c.Name = dto.Name
	c.StartDate = dto.StartDate
	c.EndDate = dto.EndDate

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to update okr cycle")
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewCycles)
	return c, nil
}

func (s *service) DeleteCycle(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	cycleID, err := uuid.Parse(id)
	if err != nil {
		return ErrCycleNotFound
	}

	c, err := s.repo.FindByID(cycleID)
	if err != nil {
		return err
	}
	if c.OwnerID != userID {
		return ErrUnauthorized
	}

	count, err := s.objectives.CountByCycleID(cycleID)
	if err != nil {
		return err
	}
	if count > 0 {
		log.WithField("cycle_id", cycleID).Warn("Refused to delete cycle with assigned objectives")
		return ErrCycleHasObjectives
	}

	if err := s.repo.Delete(cycleID); err != nil {
		log.WithError(err).Error("Failed to delete okr cycle")
		return err
	}

	s.notifier.Revalidate(ctx, notify.ViewCycles)
	log.WithField("cycle_id", cycleID).Info("Okr cycle deleted")
	return nil
}

func (s *service) GetActiveCycle(ctx context.Context) (*OkrCycle, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindActive(userID)
}

func (s *service) SetActiveCycle(ctx context.Context, dto SetActiveCycleDTO) error {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if err := s.validate.Struct(dto); err != nil {
		return ErrValidation
	}

	if _, err := s.repo.FindByID(dto.CycleID); err != nil {
		return err
	}

	if err := s.repo.SetActive(userID, dto.CycleID); err != nil {
		log.WithError(err).Error("Failed to set active okr cycle")
		return err
	}

	s.notifier.Revalidate(ctx, notify.ViewDashboard, notify.ViewObjectives)
	return nil
}
