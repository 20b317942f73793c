package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	jwtauth "github.com/Dev-MiMi/expensetracker/internal/auth"
	accounthandler "github.com/Dev-MiMi/expensetracker/internal/http/account"
	authhandler "github.com/Dev-MiMi/expensetracker/internal/http/auth"
	budgethandler "github.com/Dev-MiMi/expensetracker/internal/http/budget"
	exporthandler "github.com/Dev-MiMi/expensetracker/internal/http/export"
	goalhandler "github.com/Dev-MiMi/expensetracker/internal/http/goal"
	importhandler "github.com/Dev-MiMi/expensetracker/internal/http/importcsv"
	matchinghandler "github.com/Dev-MiMi/expensetracker/internal/http/matching"
	recordhandler "github.com/Dev-MiMi/expensetracker/internal/http/record"
	ownermw "github.com/Dev-MiMi/expensetracker/internal/http/middleware"
)

// Handlers bundles the versioned API handlers the router mounts.
type Handlers struct {
	Auth     *authhandler.Handler
	Accounts *accounthandler.Handler
	Records  *recordhandler.Handler
	Budgets  *budgethandler.Handler
	Goals    *goalhandler.Handler
	Import   *importhandler.Handler
	Export   *exporthandler.Handler
	Matching *matchinghandler.Handler
}

func New(jwtManager *jwtauth.JWTManager, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(ownermw.RequireAuth(jwtManager))

			r.Route("/accounts", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Accounts.Routes(r)
			})

			r.Route("/records", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Records.Routes(r)
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Budgets.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Goals.Routes(r)
			})

			r.Route("/import", h.Import.Routes)
			r.Route("/export", h.Export.Routes)

			r.Route("/matching", func(r chi.Router) {
				h.Matching.Routes(r)
			})
		})
	})

	return router
}
