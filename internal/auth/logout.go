package auth

import (
	"net/http"
	"os"

	"github.com/okayr/okayr-api/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   os.Getenv("COOKIE_DOMAIN"),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, "jwt")
	clearCookie(w, "refresh_token")

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
