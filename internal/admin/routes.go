package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/users", h.ListUsers)
	r.Put("/users/{id}/active", h.SetUserActive)
	r.Delete("/users/{id}", h.DeleteUser)

	return r
}
