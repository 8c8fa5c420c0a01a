package team

import (
	"time"

	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/user"
)

type Team struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     user.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	Members        []Member        `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	InvitationLink *InvitationLink `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// Member is a named person shown on the team, distinct from a User account.
// Key results reference members as assignees.
type Member struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index" json:"team_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url,omitempty"`
}

type TeamMembership struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TeamID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"team_id"`
	Team     Team      `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	Role     Role      `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

type InvitationLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"team_id"`
	Code      string    `gorm:"type:text;not null;uniqueIndex" json:"code"`
	CreatorID uuid.UUID `gorm:"type:uuid;not null" json:"creator_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
