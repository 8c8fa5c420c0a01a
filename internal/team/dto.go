package team

import (
	"time"

	"github.com/google/uuid"
)

type MemberFormDTO struct {
	ID        *uuid.UUID `json:"id"`
	Name      string     `json:"name" validate:"required,max=100"`
	AvatarURL *string    `json:"avatar_url" validate:"omitempty,url"`
}

type CreateTeamDTO struct {
	Name    string          `json:"name" validate:"required,max=100"`
	Members []MemberFormDTO `json:"members" validate:"dive"`
}

type UpdateTeamDTO struct {
	ID      uuid.UUID       `json:"id" validate:"required"`
	Name    string          `json:"name" validate:"required,max=100"`
	Members []MemberFormDTO `json:"members" validate:"dive"`
}

type JoinTeamDTO struct {
	Code string `json:"code" validate:"required"`
}

type TeamResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	OwnerID        uuid.UUID `json:"owner_id"`
	OwnerName      string    `json:"owner_name"`
	Role           Role      `json:"role"`
	InvitationCode string    `json:"invitation_code,omitempty"`
	Members        []Member  `json:"members"`
	CreatedAt      time.Time `json:"created_at"`
}
