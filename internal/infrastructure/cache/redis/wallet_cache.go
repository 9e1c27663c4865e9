// Package redis implements the read-side wallet cache.
//
// The cache is strictly an optimization: every failure degrades to a
// database read and is logged at debug level, never surfaced to the
// caller.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Haleralex/walletflow/internal/application/ports"
)

// Compile-time check
var _ ports.WalletCache = (*WalletCache)(nil)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultConfig returns the default cache settings. The TTL is short:
// the cache only has to absorb read bursts between writes, and writes
// invalidate explicitly anyway.
func DefaultConfig() Config {
	return Config{
		Addr: "localhost:6379",
		TTL:  30 * time.Second,
	}
}

// WalletCache implements ports.WalletCache on go-redis.
type WalletCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewWalletCache creates a WalletCache.
func NewWalletCache(cfg Config, log *slog.Logger) *WalletCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &WalletCache{
		client: client,
		ttl:    cfg.TTL,
		log:    log.With(slog.String("component", "wallet_cache")),
	}
}

// Ping verifies connectivity. Used by the /health endpoint.
func (c *WalletCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns the cached wallet payload, if present.
func (c *WalletCache) Get(ctx context.Context, walletID string) ([]byte, bool) {
	data, err := c.client.Get(ctx, cacheKey(walletID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.DebugContext(ctx, "cache read failed",
				slog.String("wallet_id", walletID),
				slog.Any("error", err),
			)
		}
		return nil, false
	}
	return data, true
}

// Set stores a wallet payload with the configured TTL.
func (c *WalletCache) Set(ctx context.Context, walletID string, data []byte) {
	if err := c.client.Set(ctx, cacheKey(walletID), data, c.ttl).Err(); err != nil {
		c.log.DebugContext(ctx, "cache write failed",
			slog.String("wallet_id", walletID),
			slog.Any("error", err),
		)
	}
}

// Invalidate drops the cached payloads of the given wallets. Called
// after every committed balance change.
func (c *WalletCache) Invalidate(ctx context.Context, walletIDs ...string) {
	if len(walletIDs) == 0 {
		return
	}
	keys := make([]string, len(walletIDs))
	for i, id := range walletIDs {
		keys[i] = cacheKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.DebugContext(ctx, "cache invalidation failed",
			slog.Any("wallet_ids", walletIDs),
			slog.Any("error", err),
		)
	}
}

// Close releases the client connections.
func (c *WalletCache) Close() error {
	return c.client.Close()
}

func cacheKey(walletID string) string {
	return fmt.Sprintf("wallet:%s", walletID)
}
