package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Haleralex/walletflow/internal/config"
	"github.com/Haleralex/walletflow/internal/container"
)

func main() {
	cfg, err := config.Load("configs", "wallet")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.App.Name = "wallet-service"

	c := container.NewWalletContainer(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := c.Initialize(ctx); err != nil {
		cancel()
		log.Fatalf("failed to initialize wallet service: %v", err)
	}
	cancel()

	if err := c.Run(); err != nil {
		c.Logger().Error("wallet service failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := c.Shutdown(shutdownCtx); err != nil {
		c.Logger().Error("shutdown finished with errors", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
