// Package ports - EventPublisher abstracts the partitioned message log.
package ports

import (
	"context"

	"github.com/Haleralex/walletflow/internal/domain/events"
)

// EventPublisher publishes wallet events to the message log.
//
// Delivery is at-least-once; consumers deduplicate by transaction_id.
// Implementations publish one message per partition key the event
// reports (transfer events fan out to both wallets' partitions with an
// identical payload) and must not report success until the broker has
// acknowledged the write from all in-sync replicas.
type EventPublisher interface {
	// Publish serializes and publishes one event.
	//
	// Callers invoke Publish only after their local transaction has
	// committed; a failure here is logged by the caller and never
	// surfaced to the end user.
	Publish(ctx context.Context, event events.Event) error
}

// WalletCache is a read-side cache for wallet lookups. Implementations
// degrade silently: a cache failure is never an operation failure.
type WalletCache interface {
	// Get returns the cached wallet response payload, or ok=false on
	// miss or cache error.
	Get(ctx context.Context, walletID string) ([]byte, bool)

	// Set stores the wallet response payload with the cache's TTL.
	Set(ctx context.Context, walletID string, payload []byte)

	// Invalidate drops the entries for the given wallets. Called after
	// any balance mutation commits.
	Invalidate(ctx context.Context, walletIDs ...string)
}
