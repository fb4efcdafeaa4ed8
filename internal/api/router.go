// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bannerearn-wallet/internal/api/handler"
	authmw "bannerearn-wallet/internal/api/middleware"
	"bannerearn-wallet/internal/metrics"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth   *handler.AuthHandler
	Wallet *handler.WalletHandler
	Admin  *handler.AdminHandler
}

// RouterConfig holds the router settings that come from configuration.
type RouterConfig struct {
	Tokens         authmw.TokenParser
	AllowedOrigins []string
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authenticate := authmw.Authenticate(cfg.Tokens)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.With(authenticate).Get("/profile", h.Auth.GetProfile)
		r.With(authenticate).Put("/profile", h.Auth.UpdateProfile)
	})

	r.Route("/wallet", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/click", h.Wallet.Click)
		r.Post("/withdraw", h.Wallet.Withdraw)
		r.Get("/balance", h.Wallet.GetBalance)
		r.Get("/withdrawals", h.Wallet.GetWithdrawals)
		r.Get("/clicks", h.Wallet.GetClicks)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate, authmw.RequireAdmin)
		r.Get("/withdrawals", h.Admin.ListWithdrawals)
		r.Put("/withdrawals/{withdrawalID}", h.Admin.UpdateWithdrawal)
		r.Get("/stats", h.Admin.Stats)
		r.Get("/users", h.Admin.ListUsers)
	})

	logger.Debug("HTTP routes registered")
	return r
}
