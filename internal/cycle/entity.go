package cycle

import (
	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/user"
	util "github.com/okayr/okayr-api/internal/utils"
)

type OkrCycle struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	StartDate util.LocalDate `gorm:"type:date;not null" json:"start_date"`
	EndDate   util.LocalDate `gorm:"type:date;not null" json:"end_date"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     user.User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

// ActiveOkrCycle pins at most one cycle per user; saves replace the row.
type ActiveOkrCycle struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CycleID uuid.UUID `gorm:"type:uuid;not null" json:"cycle_id"`
	Cycle   OkrCycle  `gorm:"foreignKey:CycleID;constraint:OnDelete:CASCADE" json:"-"`
}
