package team

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTeamNotFound = errors.New("team not found")

type Repository interface {
	FindByID(id uuid.UUID) (*Team, error)
	FindMembershipsByUser(userID uuid.UUID) ([]TeamMembership, error)
	TeamIDsForUser(userID uuid.UUID) ([]uuid.UUID, error)
	FindMembership(userID, teamID uuid.UUID) (*TeamMembership, error)
	CreateMembership(m *TeamMembership) error
	FindMembersByTeam(teamID uuid.UUID) ([]Member, error)
	DeleteTeam(id uuid.UUID) error
	Transaction(fn func(tx *gorm.DB) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(id uuid.UUID) (*Team, error) {
	var t Team
	err := r.db.
		Preload("Members").
		Preload("InvitationLink").
		Preload("Owner").
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindMembershipsByUser(userID uuid.UUID) ([]TeamMembership, error) {
	var memberships []TeamMembership
	err := r.db.
		Preload("Team.Members").
		Preload("Team.InvitationLink").
		Preload("Team.Owner").
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *repository) TeamIDsForUser(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&TeamMembership{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) FindMembership(userID, teamID uuid.UUID) (*TeamMembership, error) {
	var m TeamMembership
	err := r.db.First(&m, "user_id = ? AND team_id = ?", userID, teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) CreateMembership(m *TeamMembership) error {
	return r.db.Create(m).Error
}

func (r *repository) FindMembersByTeam(teamID uuid.UUID) ([]Member, error) {
	var members []Member
	if err := r.db.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) DeleteTeam(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Member{}, "team_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&TeamMembership{}, "team_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&InvitationLink{}, "team_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Team{}, "id = ?", id).Error
	})
}

func (r *repository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
