package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/okayr/okayr-api/internal/admin"
	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/calendar"
	"github.com/okayr/okayr-api/internal/cycle"
	"github.com/okayr/okayr-api/internal/middlewares"
	"github.com/okayr/okayr-api/internal/objective"
	"github.com/okayr/okayr-api/internal/team"
	"github.com/okayr/okayr-api/internal/user"
)

type RouterConfig struct {
	UserHandler      *user.Handler
	ObjectiveHandler *objective.Handler
	TeamHandler      *team.Handler
	CycleHandler     *cycle.Handler
	CalendarHandler  *calendar.Handler
	AdminHandler     *admin.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/objectives", objective.Routes(cfg.ObjectiveHandler))
		r.Mount("/teams", team.Routes(cfg.TeamHandler))
		r.Mount("/cycles", cycle.Routes(cfg.CycleHandler))
		r.Mount("/calendar", calendar.Routes(cfg.CalendarHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))

		r.Group(func(r chi.Router) {
			r.Use(auth.AdminMiddleware)
			r.Mount("/admin", admin.Routes(cfg.AdminHandler))
		})
	})

	return r
}
