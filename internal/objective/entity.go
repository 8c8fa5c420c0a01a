package objective

import (
	"time"

	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/team"
)

type Objective struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index" json:"team_id"`
	CycleID     uuid.UUID `gorm:"type:uuid;not null;index" json:"cycle_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	KeyResults []KeyResult `gorm:"foreignKey:ObjectiveID;constraint:OnDelete:CASCADE" json:"key_results"`
}

type KeyResult struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ObjectiveID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"objective_id"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Progress        int             `gorm:"not null;default:0" json:"progress"`
	ConfidenceLevel ConfidenceLevel `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"confidence_level"`

	Initiatives []Initiative `gorm:"foreignKey:KeyResultID;constraint:OnDelete:CASCADE" json:"initiatives"`
	Risks       []Risk       `gorm:"foreignKey:KeyResultID;constraint:OnDelete:CASCADE" json:"risks"`

	// Assignees is resolved by the repository through the join table; the
	// writer replaces the links wholesale on every save.
	Assignees []team.Member `gorm:"-" json:"assignees"`
}

type Initiative struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	KeyResultID uuid.UUID        `gorm:"type:uuid;not null;index" json:"key_result_id"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Status      InitiativeStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`

	Tasks []Task `gorm:"foreignKey:InitiativeID;constraint:OnDelete:CASCADE" json:"tasks"`
}

type Task struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InitiativeID uuid.UUID `gorm:"type:uuid;not null;index" json:"initiative_id"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"`
}

type Risk struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	KeyResultID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"key_result_id"`
	Description      string     `gorm:"type:text;not null" json:"description"`
	CorrectiveAction string     `gorm:"type:text;not null" json:"corrective_action"`
	Status           RiskStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
}

type KeyResultAssignee struct {
	KeyResultID uuid.UUID `gorm:"type:uuid;primaryKey" json:"key_result_id"`
	MemberID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
}
