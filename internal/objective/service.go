package objective

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/cycle"
	"github.com/okayr/okayr-api/internal/notify"
)

var (
	ErrUnauthorized  = errors.New("authentication required")
	ErrCycleRequired = errors.New("an active cycle is required")
	ErrValidation    = errors.New("invalid objective payload")
)

// ActiveCycleSource resolves the caller's currently selected cycle.
type ActiveCycleSource interface {
	ActiveCycleID(userID uuid.UUID) (uuid.UUID, error)
}

// TeamSource resolves the teams the caller belongs to.
type TeamSource interface {
	TeamIDsForUser(userID uuid.UUID) ([]uuid.UUID, error)
}

type Service struct {
	repo     *Repository
	cycles   ActiveCycleSource
	teams    TeamSource
	notifier notify.Notifier
	validate *validator.Validate
}

func NewService(repo *Repository, cycles ActiveCycleSource, teams TeamSource, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		cycles:   cycles,
		teams:    teams,
		notifier: notifier,
		validate: validator.New(),
	}
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

// Save validates and persists a whole objective tree, then marks the views
// derived from it as stale.
func (s *Service) Save(ctx context.Context, form *ObjectiveForm) (*Objective, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validate.Struct(form); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	teamIDs, err := s.teams.TeamIDsForUser(userID)
	if err != nil {
		return nil, err
	}
	if !containsID(teamIDs, form.TeamID) {
		return nil, ErrUnauthorized
	}

	id, err := s.repo.SaveTree(ctx, form)
	if err != nil {
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewObjectives, notify.ViewDashboard, notify.ViewTasks)

	return s.repo.GetByID(ctx, id)
}

// List returns the caller's objective trees for their active cycle. A caller
// with no active cycle gets ErrCycleRequired; a caller with no teams gets an
// empty list.
func (s *Service) List(ctx context.Context) ([]Objective, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	cycleID, err := s.cycles.ActiveCycleID(userID)
	if err != nil {
		if errors.Is(err, cycle.ErrNoActiveCycle) {
			return nil, ErrCycleRequired
		}
		return nil, err
	}

	teamIDs, err := s.teams.TeamIDsForUser(userID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByCycleAndTeams(ctx, cycleID, teamIDs)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Objective, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teamIDs, err := s.teams.TeamIDsForUser(userID)
	if err != nil {
		return nil, err
	}
	if !containsID(teamIDs, obj.TeamID) {
		return nil, ErrObjectiveNotFound
	}
	return obj, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	obj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	teamIDs, err := s.teams.TeamIDsForUser(userID)
	if err != nil {
		return err
	}
	if !containsID(teamIDs, obj.TeamID) {
		return ErrObjectiveNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	config.WithContext(ctx).WithField("objective_id", id).Info("Objective deleted")
	s.notifier.Revalidate(ctx, notify.ViewObjectives, notify.ViewDashboard, notify.ViewTasks)
	return nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
