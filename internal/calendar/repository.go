package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingsNotFound = errors.New("calendar settings not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUser(ctx context.Context, userID uuid.UUID) (*CalendarSettings, error) {
	var s CalendarSettings
	err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert keeps at most one settings row per user.
func (r *Repository) Upsert(ctx context.Context, s *CalendarSettings) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"frequency", "check_in_day", "evaluation_date"}),
	}).Create(s).Error
}
