package calendar

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.SaveSettings)

	return r
}
