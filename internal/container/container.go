// Package container - dependency injection for both services.
//
// A container owns the lifecycle of every dependency:
// - creation (Initialize)
// - access (getters)
// - teardown (Shutdown, in reverse creation order)
//
// Pattern: Composition Root. Everything is assembled in one place, so
// implementations are easy to swap in tests.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/walletflow/internal/adapters/http"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/application/usecases/wallet"
	"github.com/Haleralex/walletflow/internal/config"
	"github.com/Haleralex/walletflow/internal/infrastructure/cache/redis"
	"github.com/Haleralex/walletflow/internal/infrastructure/messaging/kafka"
	"github.com/Haleralex/walletflow/internal/infrastructure/persistence/postgres"
	"github.com/Haleralex/walletflow/internal/pkg/logger"
)

// ============================================
// Wallet Service Container
// ============================================

// WalletContainer wires the wallet service.
type WalletContainer struct {
	config *config.Config
	logger *slog.Logger

	// Infrastructure
	pool      *pgxpool.Pool
	publisher *kafka.Publisher
	cache     ports.WalletCache
	redisC    *redis.WalletCache // nil when the cache is disabled

	// Repositories
	walletRepo      ports.WalletRepository
	transactionRepo ports.TransactionRepository

	// Unit of Work
	uow ports.UnitOfWork

	// Use Cases
	createWalletUC    *wallet.CreateWalletUseCase
	fundWalletUC      *wallet.FundWalletUseCase
	transferFundsUC   *wallet.TransferFundsUseCase
	getWalletUC       *wallet.GetWalletUseCase
	listUserWalletsUC *wallet.ListUserWalletsUseCase

	// HTTP
	httpServer *http.Server
}

// NewWalletContainer creates a wallet service container.
func NewWalletContainer(cfg *config.Config) *WalletContainer {
	return &WalletContainer{
		config: cfg,
	}
}

// Initialize builds every dependency in order.
func (c *WalletContainer) Initialize(ctx context.Context) error {
	c.logger = newLogger(c.config)
	c.logger.Info("Initializing wallet service container...")

	var err error
	c.pool, err = newPool(ctx, c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database connected")

	c.publisher = kafka.NewPublisher(kafka.PublisherConfig{
		Brokers: c.config.Kafka.Brokers,
		Topic:   c.config.Kafka.Topic,
	}, c.logger)
	if err := c.publisher.Start(ctx); err != nil {
		c.pool.Close()
		return fmt.Errorf("failed to start event publisher: %w", err)
	}
	c.logger.Info("Event publisher started")

	if c.config.Redis.Enabled {
		c.redisC = redis.NewWalletCache(redis.Config{
			Addr:     c.config.Redis.Addr,
			Password: c.config.Redis.Password,
			DB:       c.config.Redis.DB,
			TTL:      c.config.Redis.TTL,
		}, c.logger)
		c.cache = c.redisC
		c.logger.Info("Wallet cache enabled", slog.String("addr", c.config.Redis.Addr))
	} else {
		c.cache = noopWalletCache{}
	}

	c.walletRepo = postgres.NewWalletRepository(c.pool)
	c.transactionRepo = postgres.NewTransactionRepository(c.pool)
	c.uow = postgres.NewUnitOfWork(c.pool)
	c.logger.Info("Repositories initialized")

	c.initUseCases()
	c.logger.Info("Use cases initialized")

	c.initHTTPServer()
	c.logger.Info("HTTP server initialized")

	return nil
}

func (c *WalletContainer) initUseCases() {
	c.createWalletUC = wallet.NewCreateWalletUseCase(
		c.walletRepo, c.transactionRepo, c.publisher, c.uow, c.logger,
	)
	c.fundWalletUC = wallet.NewFundWalletUseCase(
		c.walletRepo, c.transactionRepo, c.publisher, c.cache, c.uow, c.logger,
	)
	c.transferFundsUC = wallet.NewTransferFundsUseCase(
		c.walletRepo, c.transactionRepo, c.publisher, c.cache, c.uow, c.logger,
	)
	c.getWalletUC = wallet.NewGetWalletUseCase(c.walletRepo, c.cache)
	c.listUserWalletsUC = wallet.NewListUserWalletsUseCase(c.walletRepo)
}

func (c *WalletContainer) initHTTPServer() {
	routerConfig := &http.RouterConfig{
		Logger:      c.logger,
		Pool:        c.pool,
		Version:     c.config.App.Version,
		BuildTime:   c.config.App.BuildTime,
		Environment: c.config.App.Environment,
	}
	if c.redisC != nil {
		routerConfig.WithCheck("cache", c.redisC.Ping)
	}

	router := http.NewWalletRouter(routerConfig, &http.WalletUseCases{
		CreateWallet:    c.createWalletUC,
		FundWallet:      c.fundWalletUC,
		TransferFunds:   c.transferFundsUC,
		GetWallet:       c.getWalletUC,
		ListUserWallets: c.listUserWalletsUC,
	})

	c.httpServer = http.NewServer(&http.ServerConfig{
		Host:            c.config.Server.Host,
		Port:            fmt.Sprintf("%d", c.config.Server.Port),
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}, router)
}

// Run starts the HTTP server and blocks until shutdown.
func (c *WalletContainer) Run() error {
	c.logger.Info("Starting wallet service",
		slog.String("version", c.config.App.Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
	)

	return c.httpServer.Run()
}

// Shutdown tears everything down in reverse creation order.
func (c *WalletContainer) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down wallet service container...")

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		}
	}

	if c.redisC != nil {
		if err := c.redisC.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache close: %w", err))
		}
	}

	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event publisher close: %w", err))
		}
	}

	if c.pool != nil {
		closePool(ctx, c.pool, c.logger)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	c.logger.Info("Wallet service container shutdown complete")
	return nil
}

// ============================================
// Getters
// ============================================

// Config returns the configuration.
func (c *WalletContainer) Config() *config.Config {
	return c.config
}

// Logger returns the logger.
func (c *WalletContainer) Logger() *slog.Logger {
	return c.logger
}

// Pool returns the database connection pool.
func (c *WalletContainer) Pool() *pgxpool.Pool {
	return c.pool
}

// HTTPServer returns the HTTP server.
func (c *WalletContainer) HTTPServer() *http.Server {
	return c.httpServer
}

// ============================================
// Shared helpers
// ============================================

// newLogger builds the service logger and installs it as the default.
func newLogger(cfg *config.Config) *slog.Logger {
	log := logger.New(&logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    os.Stdout,
		AddSource: cfg.App.Debug,
	})
	slog.SetDefault(log)
	return log
}

// newPool builds the pgx connection pool from the config.
func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.Database.MaxConnections
	poolConfig.MinConns = cfg.Database.MinConnections
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// closePool closes the pool, bounded by ctx so shutdown cannot hang on
// a stuck connection.
func closePool(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) {
	done := make(chan struct{})
	go func() {
		pool.Close()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Database connection closed")
	case <-ctx.Done():
		log.Warn("Database close timeout")
	}
}

// noopWalletCache is used when the cache is disabled: every read
// misses, writes and invalidations vanish.
type noopWalletCache struct{}

func (noopWalletCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noopWalletCache) Set(context.Context, string, []byte)        {}
func (noopWalletCache) Invalidate(context.Context, ...string)      {}
