package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/walletflow/internal/adapters/http"
	"github.com/Haleralex/walletflow/internal/application/ports"
	"github.com/Haleralex/walletflow/internal/application/usecases/history"
	"github.com/Haleralex/walletflow/internal/config"
	"github.com/Haleralex/walletflow/internal/infrastructure/messaging/kafka"
	"github.com/Haleralex/walletflow/internal/infrastructure/persistence/postgres"
)

// consumerDrainTimeout bounds how long shutdown waits for the consumer
// to finish its in-flight message.
const consumerDrainTimeout = 30 * time.Second

// ============================================
// History Service Container
// ============================================

// HistoryContainer wires the history service: the Kafka consumer, the
// projector, and the read-only query API.
type HistoryContainer struct {
	config *config.Config
	logger *slog.Logger

	// Infrastructure
	pool     *pgxpool.Pool
	consumer *kafka.Consumer

	// Repositories
	historyRepo ports.HistoryRepository

	// Unit of Work
	uow ports.UnitOfWork

	// Use Cases
	projectEventUC     *history.ProjectEventUseCase
	getWalletHistoryUC *history.GetWalletHistoryUseCase
	getUserActivityUC  *history.GetUserActivityUseCase

	// HTTP
	httpServer *http.Server
}

// NewHistoryContainer creates a history service container.
func NewHistoryContainer(cfg *config.Config) *HistoryContainer {
	return &HistoryContainer{
		config: cfg,
	}
}

// Initialize builds every dependency in order.
func (c *HistoryContainer) Initialize(ctx context.Context) error {
	c.logger = newLogger(c.config)
	c.logger.Info("Initializing history service container...")

	var err error
	c.pool, err = newPool(ctx, c.config)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database connected")

	c.historyRepo = postgres.NewHistoryRepository(c.pool)
	c.uow = postgres.NewUnitOfWork(c.pool)
	c.logger.Info("Repositories initialized")

	c.projectEventUC = history.NewProjectEventUseCase(c.historyRepo, c.uow, c.logger)
	c.getWalletHistoryUC = history.NewGetWalletHistoryUseCase(c.historyRepo)
	c.getUserActivityUC = history.NewGetUserActivityUseCase(c.historyRepo)
	c.logger.Info("Use cases initialized")

	c.consumer = kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:   c.config.Kafka.Brokers,
		Topic:     c.config.Kafka.Topic,
		GroupID:   c.config.Kafka.ConsumerGroup,
		BatchSize: c.config.Kafka.BatchSize,
	}, c.projectEventUC.Execute, c.logger)
	if err := c.consumer.Start(ctx); err != nil {
		c.pool.Close()
		return fmt.Errorf("failed to start event consumer: %w", err)
	}
	c.logger.Info("Event consumer started")

	c.initHTTPServer()
	c.logger.Info("HTTP server initialized")

	return nil
}

func (c *HistoryContainer) initHTTPServer() {
	routerConfig := &http.RouterConfig{
		Logger:      c.logger,
		Pool:        c.pool,
		Version:     c.config.App.Version,
		BuildTime:   c.config.App.BuildTime,
		Environment: c.config.App.Environment,
	}

	router := http.NewHistoryRouter(routerConfig, &http.HistoryUseCases{
		GetWalletHistory: c.getWalletHistoryUC,
		GetUserActivity:  c.getUserActivityUC,
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

// Run starts the consumer loop and the HTTP server, and blocks until
// either fails or a shutdown signal arrives.
func (c *HistoryContainer) Run(ctx context.Context) error {
	c.logger.Info("Starting history service",
		slog.String("version", c.config.App.Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
		slog.String("consumer_group", c.config.Kafka.ConsumerGroup),
	)

	consumerErr := make(chan error, 1)
	go func() {
		consumerErr <- c.consumer.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- c.httpServer.Start()
	}()

	select {
	case err := <-consumerErr:
		if err != nil {
			return fmt.Errorf("event consumer failed: %w", err)
		}
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		c.logger.Info("Shutdown requested")
		return nil
	}
}

// Shutdown tears everything down in reverse creation order. The
// consumer gets a bounded drain window for its in-flight message.
func (c *HistoryContainer) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down history service container...")

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		}
	}

	if c.consumer != nil {
		if err := c.consumer.Shutdown(consumerDrainTimeout); err != nil {
			errs = append(errs, fmt.Errorf("consumer shutdown: %w", err))
		}
	}

	if c.pool != nil {
		closePool(ctx, c.pool, c.logger)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	c.logger.Info("History service container shutdown complete")
	return nil
}

// ============================================
// Getters
// ============================================

// Config returns the configuration.
func (c *HistoryContainer) Config() *config.Config {
	return c.config
}

// Logger returns the logger.
func (c *HistoryContainer) Logger() *slog.Logger {
	return c.logger
}

// Pool returns the database connection pool.
func (c *HistoryContainer) Pool() *pgxpool.Pool {
	return c.pool
}

// ProjectEventUseCase returns the projector, exposed for tests.
func (c *HistoryContainer) ProjectEventUseCase() *history.ProjectEventUseCase {
	return c.projectEventUC
}
