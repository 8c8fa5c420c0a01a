package objective

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Save)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	return r
}
