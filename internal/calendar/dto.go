package calendar

import util "github.com/okayr/okayr-api/internal/utils"

type SettingsDTO struct {
	Frequency      Frequency       `json:"frequency" validate:"required,oneof=weekly bi-weekly monthly"`
	CheckInDay     int             `json:"check_in_day" validate:"min=0,max=6"`
	EvaluationDate *util.LocalDate `json:"evaluation_date"`
}
