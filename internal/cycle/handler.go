package cycle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/okayr/okayr-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	cycles, err := h.service.ListCycles(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("Failed to list okr cycles")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, cycles)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateCycleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.CreateCycle(r.Context(), dto)
	if err != nil {
		h.writeError(w, log, err, "Failed to create okr cycle")
		return
	}

	config.JSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateCycleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.UpdateCycle(r.Context(), dto)
	if err != nil {
		h.writeError(w, log, err, "Failed to update okr cycle")
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteCycle(r.Context(), id); err != nil {
		if errors.Is(err, ErrCycleHasObjectives) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.writeError(w, log, err, "Failed to delete okr cycle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	c, err := h.service.GetActiveCycle(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoActiveCycle) {
			config.JSON(w, http.StatusOK, nil)
			return
		}
		h.writeError(w, log, err, "Failed to load active okr cycle")
		return
	}

	config.JSON(w, http.StatusOK, c)
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto SetActiveCycleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetActiveCycle(r.Context(), dto); err != nil {
		h.writeError(w, log, err, "Failed to set active okr cycle")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, log *logrus.Entry, err error, msg string) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrCycleNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Error(msg)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
