package team

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/notify"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("invalid input")
	ErrInvalidInvite     = errors.New("invalid invitation code")
	ErrTeamHasObjectives = errors.New("team has assigned objectives")
)

// ObjectiveCounter reports how many objectives still reference a team. The
// objective repository satisfies it; declaring it here avoids an import
// cycle between the two packages.
type ObjectiveCounter interface {
	CountByTeamID(teamID uuid.UUID) (int64, error)
}

type Service interface {
	ListTeams(ctx context.Context) ([]TeamResponse, error)
	CreateTeam(ctx context.Context, dto CreateTeamDTO) (*TeamResponse, error)
	UpdateTeam(ctx context.Context, dto UpdateTeamDTO) (*TeamResponse, error)
	DeleteTeam(ctx context.Context, id string) error
	JoinTeam(ctx context.Context, dto JoinTeamDTO) (*TeamResponse, error)
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

// memberAvatar falls back to an initial-letter placeholder image when the
// form carries no avatar.
func memberAvatar(name string, avatar *string) *string {
	if avatar != nil && *avatar != "" {
		return avatar
	}
	initial, _ := utf8.DecodeRuneInString(name)
	url := fmt.Sprintf("https://placehold.co/40x40.png?text=%c", initial)
	return &url
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return uuid.MustParse(claims.UserID), nil
}

func (s *service) ListTeams(ctx context.Context) ([]TeamResponse, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	memberships, err := s.repo.FindMembershipsByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list team memberships")
		return nil, err
	}

	responses := make([]TeamResponse, 0, len(memberships))
	for _, m := range memberships {
		responses = append(responses, toResponse(&m.Team, m.Role))
	}
	return responses, nil
}

func (s *service) CreateTeam(ctx context.Context, dto CreateTeamDTO) (*TeamResponse, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, ErrValidation
	}

	t := Team{
		ID:        uuid.New(),
		Name:      dto.Name,
		OwnerID:   userID,
		CreatedAt: time.Now(),
	}

	code, err := config.Seal(t.ID.String())
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		membership := TeamMembership{
			UserID: userID,
			TeamID: t.ID,
			Role:   RoleAdmin,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		link := InvitationLink{
			ID:        uuid.New(),
			TeamID:    t.ID,
			Code:      code,
			CreatorID: userID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		for _, m := range dto.Members {
			member := Member{
				ID:        uuid.New(),
				TeamID:    t.ID,
				Name:      m.Name,
				AvatarURL: memberAvatar(m.Name, m.AvatarURL),
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to create team")
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewTeams)
	log.WithField("team_id", t.ID).Info("Team created")

	created, err := s.repo.FindByID(t.ID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(created, RoleAdmin)
	return &resp, nil
}

// UpdateTeam reconciles the member list by name: members absent from the
// incoming list are removed, unknown names are added, the rest are left
// untouched.
func (s *service) UpdateTeam(ctx context.Context, dto UpdateTeamDTO) (*TeamResponse, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, ErrValidation
	}

	membership, err := s.repo.FindMembership(userID, dto.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	current, err := s.repo.FindMembersByTeam(dto.ID)
	if err != nil {
		return nil, err
	}

	currentNames := make(map[string]struct{}, len(current))
	for _, m := range current {
		currentNames[m.Name] = struct{}{}
	}
	incomingNames := make(map[string]struct{}, len(dto.Members))
	for _, m := range dto.Members {
		incomingNames[m.Name] = struct{}{}
	}

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Team{}).Where("id = ?", dto.ID).Update("name", dto.Name).Error; err != nil {
			return err
		}

		var toDelete []uuid.UUID
		for _, m := range current {
			if _, ok := incomingNames[m.Name]; !ok {
				toDelete = append(toDelete, m.ID)
			}
		}
		if len(toDelete) > 0 {
			if err := tx.Delete(&Member{}, "id IN ?", toDelete).Error; err != nil {
				return err
			}
		}

		for _, m := range dto.Members {
			if _, ok := currentNames[m.Name]; ok {
				continue
			}
			member := Member{
				ID:        uuid.New(),
				TeamID:    dto.ID,
				Name:      m.Name,
				AvatarURL: memberAvatar(m.Name, m.AvatarURL),
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to update team")
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewTeams)

	updated, err := s.repo.FindByID(dto.ID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(updated, membership.Role)
	return &resp, nil
}

func (s *service) DeleteTeam(ctx context.Context, id string) error {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	teamID, err := uuid.Parse(id)
	if err != nil {
		return ErrTeamNotFound
	}

	if _, err := s.repo.FindMembership(userID, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthorized
		}
		return err
	}

	count, err := s.objectives.CountByTeamID(teamID)
	if err != nil {
		return err
	}
	if count > 0 {
		log.WithField("team_id", teamID).Warn("Refused to delete team with assigned objectives")
		return ErrTeamHasObjectives
	}

	if err := s.repo.DeleteTeam(teamID); err != nil {
		log.WithError(err).Error("Failed to delete team")
		return err
	}

	s.notifier.Revalidate(ctx, notify.ViewTeams)
	log.WithField("team_id", teamID).Info("Team deleted")
	return nil
}

func (s *service) JoinTeam(ctx context.Context, dto JoinTeamDTO) (*TeamResponse, error) {
	log := config.WithContext(ctx)

	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(dto); err != nil {
		return nil, ErrValidation
	}

	payload, err := config.Unseal(dto.Code)
	if err != nil {
		return nil, ErrInvalidInvite
	}
	teamID, err := uuid.Parse(payload)
	if err != nil {
		return nil, ErrInvalidInvite
	}

	t, err := s.repo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			return nil, ErrInvalidInvite
		}
		return nil, err
	}

	// Joining twice is a no-op.
	if existing, err := s.repo.FindMembership(userID, teamID); err == nil {
		resp := toResponse(t, existing.Role)
		return &resp, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership := TeamMembership{
		UserID: userID,
		TeamID: teamID,
		Role:   RoleMember,
	}
	if err := s.repo.CreateMembership(&membership); err != nil {
		log.WithError(err).Error("Failed to join team")
		return nil, err
	}

	s.notifier.Revalidate(ctx, notify.ViewTeams)
	log.WithField("team_id", teamID).Info("User joined team")

	resp := toResponse(t, RoleMember)
	return &resp, nil
}

func toResponse(t *Team, role Role) TeamResponse {
	resp := TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		OwnerName: t.Owner.FirstName + " " + t.Owner.LastName,
		Role:      role,
		Members:   t.Members,
		CreatedAt: t.CreatedAt,
	}
	if t.InvitationLink != nil {
		resp.InvitationCode = t.InvitationLink.Code
	}
	if resp.Members == nil {
		resp.Members = []Member{}
	}
	return resp
}
