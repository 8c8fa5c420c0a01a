package calendar

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okayr/okayr-api/internal/config"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetSettings godoc
// @Summary Fetch the caller's check-in calendar settings
// @Tags calendar
// @Produce json
// @Success 200 {object} CalendarSettings
// @Router /calendar/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		log.WithError(err).Error("Failed to load calendar settings")
		config.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	config.JSON(w, http.StatusOK, settings)
}

// SaveSettings godoc
// @Summary Update the caller's check-in calendar settings
// @Tags calendar
// @Accept json
// @Produce json
// @Param settings body SettingsDTO true "Calendar settings"
// @Success 200 {object} CalendarSettings
// @Router /calendar/settings [put]
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	settings, err := h.service.SaveSettings(r.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		case errors.Is(err, ErrValidation):
			config.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			log.WithError(err).Error("Failed to save calendar settings")
			config.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}
	config.JSON(w, http.StatusOK, settings)
}
