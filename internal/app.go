// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "bannerearn-wallet/internal/api"
	"bannerearn-wallet/internal/api/handler"
	"bannerearn-wallet/internal/auth"
	"bannerearn-wallet/internal/config"
	"bannerearn-wallet/internal/ledger"
	"bannerearn-wallet/internal/repository"
	"bannerearn-wallet/internal/repository/postgres"
	"bannerearn-wallet/internal/service"
	"bannerearn-wallet/internal/util"
	"bannerearn-wallet/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	AccountRepository    repository.AccountRepository
	ClickRepository      repository.ClickRepository
	WithdrawalRepository repository.WithdrawalRepository

	Ledger *ledger.Ledger
	Tokens *auth.TokenIssuer

	// Services
	WalletService service.WalletService
	AdminService  service.AdminService
	AuthService   service.AuthService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.EnsureSchema(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.AccountRepository = postgres.NewAccountRepository()
	app.ClickRepository = postgres.NewClickRepository()
	app.WithdrawalRepository = postgres.NewWithdrawalRepository()
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	deps := service.Dependencies{
		DBBeginner:   app.DB, // This is the DBTxBeginner
		DBExecutor:   app.DB, // This is the DBExecutor
		Accounts:     app.AccountRepository,
		Clicks:       app.ClickRepository,
		Withdrawals:  app.WithdrawalRepository,
		BeginTx:      db.BeginTx,
		CommitTx:     db.CommitTx,
		RollbackTx:   db.RollbackTx,
		MaxTxRetries: cfg.TxMaxRetries,
		Logger:       app.Logger,
	}
	app.Ledger = ledger.New(cfg.Policy)
	app.Tokens = auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	app.WalletService = service.NewWalletService(deps, app.Ledger)
	app.AdminService = service.NewAdminService(deps, app.Ledger)
	app.AuthService = service.NewAuthService(deps, app.Tokens, app.Ledger)
	app.Logger.Info("Services initialized.")

	// 6. Bootstrap the administrator account
	created, err := app.AuthService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	if !created {
		app.Logger.Info("Admin account already present.", "email", cfg.AdminEmail)
	}

	// 7. Initialize HTTP Handlers and Router
	handlers := router.Handlers{
		Auth:   handler.NewAuthHandler(app.AuthService, app.WalletService, app.Logger),
		Wallet: handler.NewWalletHandler(app.WalletService, app.Logger),
		Admin:  handler.NewAdminHandler(app.AdminService, app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, router.RouterConfig{
		Tokens:         app.Tokens,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
