package admin

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog records every back-office mutation with the acting admin and a
// JSON snapshot of what changed.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"admin_id"`
	Action    string         `gorm:"type:varchar(50);not null" json:"action"`
	TargetID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"target_id"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
