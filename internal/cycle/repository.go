package cycle

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCycleNotFound = errors.New("okr cycle not found")
	ErrNoActiveCycle = errors.New("no active okr cycle")
)

type Repository interface {
	Create(c *OkrCycle) error
	FindByID(id uuid.UUID) (*OkrCycle, error)
	ListByOwner(ownerID uuid.UUID) ([]OkrCycle, error)
	Update(c *OkrCycle) error
	Delete(id uuid.UUID) error
	ActiveCycleID(userID uuid.UUID) (uuid.UUID, error)
	FindActive(userID uuid.UUID) (*OkrCycle, error)
	SetActive(userID, cycleID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(c *OkrCycle) error {
	return r.db.Create(c).Error
}

func (r *repository) FindByID(id uuid.UUID) (*OkrCycle, error) {
	var c OkrCycle
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCycleNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByOwner(ownerID uuid.UUID) ([]OkrCycle, error) {
	var cycles []OkrCycle
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("start_date DESC").
		Find(&cycles).Error
	if err != nil {
		return nil, err
	}
	return cycles, nil
}

func (r *repository) Update(c *OkrCycle) error {
	return r.db.Save(c).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&ActiveOkrCycle{}, "cycle_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&OkrCycle{}, "id = ?", id).Error
	})
}

func (r *repository) ActiveCycleID(userID uuid.UUID) (uuid.UUID, error) {
	var active ActiveOkrCycle
	if err := r.db.First(&active, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNoActiveCycle
		}
		return uuid.Nil, err
	}
	return active.CycleID, nil
}

func (r *repository) FindActive(userID uuid.UUID) (*OkrCycle, error) {
	var active ActiveOkrCycle
	err := r.db.Preload("Cycle").First(&active, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveCycle
		}
		return nil, err
	}
	return &active.Cycle, nil
}

func (r *repository) SetActive(userID, cycleID uuid.UUID) error {
	active := ActiveOkrCycle{UserID: userID, CycleID: cycleID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cycle_id"}),
	}).Create(&active).Error
}
