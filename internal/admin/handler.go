package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/user"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type setActiveDTO struct {
	IsActive bool `json:"is_active"`
}

func (h *Handler) writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		config.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, user.ErrNotFound):
		config.JSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
	default:
		log.WithError(err).Error("Admin operation failed")
		config.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// ListUsers godoc
// @Summary List all registered users
// @Tags admin
// @Produce json
// @Success 200 {array} user.UserResponse
// @Router /admin/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, users)
}

// SetUserActive godoc
// @Summary Activate or deactivate a user account
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} user.UserResponse
// @Router /admin/users/{id}/active [put]
func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	var dto setActiveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := h.service.SetUserActive(r.Context(), id, dto.IsActive)
	if err != nil {
		h.writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary Delete a user account
// @Tags admin
// @Param id path string true "User ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
