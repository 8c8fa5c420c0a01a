package objective

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		config.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, ErrObjectiveNotFound):
		config.JSON(w, http.StatusNotFound, map[string]string{"error": "objective not found"})
	case errors.Is(err, ErrCycleRequired):
		config.JSON(w, http.StatusConflict, map[string]string{"error": "no active cycle selected"})
	case errors.Is(err, ErrValidation):
		config.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		log.WithError(err).Error("Objective operation failed")
		config.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// Save godoc
// @Summary Create or update an objective tree
// @Tags objectives
// @Accept json
// @Produce json
// @Param objective body ObjectiveForm true "Objective tree"
// @Success 200 {object} Objective
// @Router /objectives [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var form ObjectiveForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	obj, err := h.service.Save(r.Context(), &form)
	if err != nil {
		h.writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, obj)
}

// List godoc
// @Summary List objectives for the caller's active cycle
// @Tags objectives
// @Produce json
// @Success 200 {array} Objective
// @Router /objectives [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	objs, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, objs)
}

// Get godoc
// @Summary Fetch one objective tree
// @Tags objectives
// @Produce json
// @Param id path string true "Objective ID"
// @Success 200 {object} Objective
// @Router /objectives/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid objective id"})
		return
	}

	obj, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, obj)
}

// Delete godoc
// @Summary Delete an objective tree
// @Tags objectives
// @Param id path string true "Objective ID"
// @Success 204
// @Router /objectives/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		config.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid objective id"})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
