package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Haleralex/walletflow/internal/config"
	"github.com/Haleralex/walletflow/internal/container"
)

func main() {
	cfg, err := config.Load("configs", "history")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.App.Name = "history-service"

	c := container.NewHistoryContainer(cfg)

	initCtx, initCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := c.Initialize(initCtx); err != nil {
		initCancel()
		log.Fatalf("failed to initialize history service: %v", err)
	}
	initCancel()

	// Run until a shutdown signal or a component failure
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := c.Run(runCtx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer shutdownCancel()
	if err := c.Shutdown(shutdownCtx); err != nil {
		c.Logger().Error("shutdown finished with errors", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if runErr != nil {
		c.Logger().Error("history service failed", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
}
