package calendar

import (
	"github.com/google/uuid"
	util "github.com/okayr/okayr-api/internal/utils"
)

// CalendarSettings holds one row per user describing their check-in rhythm.
type CalendarSettings struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Frequency      Frequency       `gorm:"type:varchar(20);not null;default:'weekly'" json:"frequency"`
	CheckInDay     int             `gorm:"not null;default:0" json:"check_in_day"`
	EvaluationDate *util.LocalDate `gorm:"type:date" json:"evaluation_date"`
}
