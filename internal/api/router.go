package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hugh/otp-auth/internal/api/handlers"
	"github.com/hugh/otp-auth/internal/api/middleware"
	"github.com/hugh/otp-auth/internal/auth"
	"github.com/hugh/otp-auth/internal/store"
	"github.com/redis/go-redis/v9"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	Users          store.Users
	Redis          *redis.Client // optional, only used by /health
	Logger         *slog.Logger
	JWTService     auth.TokenService
	AuthService    auth.Authenticator
	AllowedOrigins []string // CORS allowed origins
	Production     bool
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.Users, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Production)
	userHandler := handlers.NewUserHandler(cfg.AuthService)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/send-reset-otp", authHandler.SendResetOTP)
			r.Post("/reset-password", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTService))
				r.Post("/send-verify-otp", authHandler.SendVerifyOTP)
				r.Post("/verify-email", authHandler.VerifyEmail)
				r.Get("/is-authenticated", authHandler.IsAuthenticated)
				r.Post("/is-authenticated", authHandler.IsAuthenticated)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))
			r.Get("/data", userHandler.GetUserData)
		})
	})

	return &Router{r}
}
