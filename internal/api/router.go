package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hvisser/gatehouse/internal/api/handlers"
	"github.com/hvisser/gatehouse/internal/auth"
	"github.com/hvisser/gatehouse/internal/services"
)

// RouterOptions carries the configuration the router needs beyond its
// service dependencies.
type RouterOptions struct {
	SessionTTL   time.Duration
	SecureCookie bool
	CORSOrigin   string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(authService services.AuthServiceProvider, issuer *auth.TokenIssuer, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, issuer, opts.SessionTTL, opts.SecureCookie)
	pageHandler := handlers.NewPageHandler()

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(issuer))
				r.Get("/me", authHandler.Me)
			})
		})
	})

	// Pages, all behind the access gate so the redirect rules apply
	// uniformly.
	r.Group(func(r chi.Router) {
		r.Use(auth.Gate(issuer))
		r.Get("/", pageHandler.Home)
		r.Get(auth.DashboardPath, pageHandler.Dashboard)
		r.Get(auth.SignInPath, pageHandler.SignIn)
		r.Get(auth.SignUpPath, pageHandler.SignUp)
	})

	return r
}
