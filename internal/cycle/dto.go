package cycle

import (
	"github.com/google/uuid"
	util "github.com/okayr/okayr-api/internal/utils"
)

type CreateCycleDTO struct {
	Name      string         `json:"name" validate:"required,max=100"`
	StartDate util.LocalDate `json:"start_date" validate:"required"`
	EndDate   util.LocalDate `json:"end_date" validate:"required"`
}

type UpdateCycleDTO struct {
	ID        uuid.UUID      `json:"id" validate:"required"`
	Name      string         `json:"name" validate:"required,max=100"`
	StartDate util.LocalDate `json:"start_date" validate:"required"`
	EndDate   util.LocalDate `json:"end_date" validate:"required"`
}

type SetActiveCycleDTO struct {
	CycleID uuid.UUID `json:"cycle_id" validate:"required"`
}
