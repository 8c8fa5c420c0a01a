package objective

import "github.com/google/uuid"

// ObjectiveForm is the single write contract for an objective tree. The
// shape is validated strictly at the boundary; children without an id are
// inserted, children with an id are updated, and persisted children missing
// from the form are deleted.

type ObjectiveForm struct {
	ID          *uuid.UUID      `json:"id"`
	Description string          `json:"description" validate:"required,max=500"`
	TeamID      uuid.UUID       `json:"team_id" validate:"required"`
	CycleID     uuid.UUID       `json:"cycle_id" validate:"required"`
	KeyResults  []KeyResultForm `json:"key_results" validate:"required,min=1,max=7,dive"`
}

type KeyResultForm struct {
	ID              *uuid.UUID       `json:"id"`
	Description     string           `json:"description" validate:"required,max=500"`
	Progress        int              `json:"progress" validate:"min=0,max=100"`
	ConfidenceLevel ConfidenceLevel  `json:"confidence_level" validate:"required,oneof=HIGH MEDIUM LOW AT_RISK"`
	Assignees       []AssigneeForm   `json:"assignees" validate:"dive"`
	Initiatives     []InitiativeForm `json:"initiatives" validate:"dive"`
	Risks           []RiskForm       `json:"risks" validate:"dive"`
}

type AssigneeForm struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type InitiativeForm struct {
	ID          *uuid.UUID       `json:"id"`
	Description string           `json:"description" validate:"required,max=500"`
	Status      InitiativeStatus `json:"status" validate:"required,oneof=NOT_STARTED IN_PROGRESS COMPLETED BLOCKED"`
	Tasks       []TaskForm       `json:"tasks" validate:"dive"`
}

type TaskForm struct {
	ID          *uuid.UUID `json:"id"`
	Description string     `json:"description" validate:"required,max=200"`
	Completed   bool       `json:"completed"`
}

type RiskForm struct {
	ID               *uuid.UUID `json:"id"`
	Description      string     `json:"description" validate:"required,max=500"`
	CorrectiveAction string     `json:"corrective_action" validate:"required,max=500"`
	Status           RiskStatus `json:"status" validate:"required,oneof=ACTIVE UNDER_REVIEW RESOLVED"`
}
