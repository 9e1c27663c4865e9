// Package http - router configuration for the two REST APIs.
//
// Composition root for the HTTP surface: handlers and middleware are
// assembled here, each handler receives only the use cases it needs.
package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Haleralex/walletflow/internal/adapters/http/common"
	"github.com/Haleralex/walletflow/internal/adapters/http/handlers"
	"github.com/Haleralex/walletflow/internal/adapters/http/middleware"
)

// ============================================
// Router Configuration
// ============================================

// RouterConfig carries the shared router settings.
type RouterConfig struct {
	// Logger used by the middleware chain
	Logger *slog.Logger
	// Pool used by the health endpoints
	Pool *pgxpool.Pool
	// Version of the binary
	Version string
	// BuildTime of the binary
	BuildTime string
	// Environment (development, staging, production)
	Environment string
	// AllowedOrigins for CORS in production
	AllowedOrigins []string
	// ExtraChecks are additional readiness probes (broker, cache)
	ExtraChecks map[string]handlers.CheckFunc
}

// DefaultRouterConfig returns the development defaults.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		Logger:         slog.Default(),
		Version:        "dev",
		BuildTime:      "unknown",
		Environment:    "development",
		AllowedOrigins: []string{"*"},
	}
}

// ============================================
// Use Case Providers
// ============================================

// WalletUseCases bundles the wallet service use cases.
type WalletUseCases struct {
	CreateWallet    handlers.CreateWalletUseCase
	FundWallet      handlers.FundWalletUseCase
	TransferFunds   handlers.TransferFundsUseCase
	GetWallet       handlers.GetWalletUseCase
	ListUserWallets handlers.ListUserWalletsUseCase
}

// HistoryUseCases bundles the history service use cases.
type HistoryUseCases struct {
	GetWalletHistory handlers.GetWalletHistoryUseCase
	GetUserActivity  handlers.GetUserActivityUseCase
}

// ============================================
// Router Builders
// ============================================

// NewWalletRouter builds the gin engine of the wallet service.
func NewWalletRouter(config *RouterConfig, useCases *WalletUseCases) *gin.Engine {
	router := newBaseRouter(config)

	walletHandler := handlers.NewWalletHandler(
		useCases.CreateWallet,
		useCases.FundWallet,
		useCases.TransferFunds,
		useCases.GetWallet,
		useCases.ListUserWallets,
	)

	api := router.Group("")
	{
		wallets := api.Group("/wallets")
		{
			wallets.POST("", walletHandler.CreateWallet)
			wallets.GET("/:id", walletHandler.GetWallet)

			// Money movement gets the stricter per-endpoint limit
			financialOps := wallets.Group("")
			financialOps.Use(middleware.TransactionRateLimit())
			{
				financialOps.POST("/:id/fund", walletHandler.FundWallet)
				financialOps.POST("/:id/transfer", walletHandler.Transfer)
			}
		}

		api.GET("/users/:id/wallets", walletHandler.ListUserWallets)
	}

	return router
}

// NewHistoryRouter builds the gin engine of the history service.
func NewHistoryRouter(config *RouterConfig, useCases *HistoryUseCases) *gin.Engine {
	router := newBaseRouter(config)

	historyHandler := handlers.NewHistoryHandler(
		useCases.GetWalletHistory,
		useCases.GetUserActivity,
	)
	historyHandler.RegisterRoutes(router.Group(""))

	return router
}

// newBaseRouter assembles the middleware chain, the metrics endpoint,
// and the health endpoints shared by both services.
func newBaseRouter(config *RouterConfig) *gin.Engine {
	if config == nil {
		config = DefaultRouterConfig()
	}

	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	handlers.SetupValidator()

	// Recovery first, everything else inside it
	router.Use(middleware.Recovery(&middleware.RecoveryConfig{
		Logger:           config.Logger,
		EnableStackTrace: config.Environment != "production",
	}))

	router.Use(middleware.RequestID())

	if config.Environment == "production" {
		router.Use(middleware.CORS(middleware.ProductionCORSConfig(config.AllowedOrigins)))
	} else {
		router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}

	router.Use(middleware.Logging(&middleware.LoggingConfig{
		Logger:    config.Logger,
		SkipPaths: []string{"/health", "/live", "/ready", "/metrics"},
	}))

	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(
		config.Pool,
		config.Version,
		config.BuildTime,
	)
	for name, check := range config.ExtraChecks {
		healthHandler.WithCheck(name, check)
	}
	healthHandler.RegisterRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		common.NotFound(c, "endpoint not found")
	})

	return router
}

// WithCheck registers an extra readiness probe on the config.
func (c *RouterConfig) WithCheck(name string, check func(context.Context) error) *RouterConfig {
	if c.ExtraChecks == nil {
		c.ExtraChecks = make(map[string]handlers.CheckFunc)
	}
	c.ExtraChecks[name] = check
	return c
}
