// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"workledger/internal/models"
)

// Store defines the interface for client record persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Records round-trip whole: GetClient returns the full snapshot (payments,
// workers, history included) and SaveClient writes it back in one piece.
// The service mutates a snapshot between the two calls, which preserves the
// read-modify-write atomicity of the ledger with a single logical writer.
type Store interface {
	// CreateClient persists a new client record. If unset, the client's
	// ID and CreatedAt fields are populated by the store.
	CreateClient(ctx context.Context, client *models.Client) error

	// GetClient retrieves a full client snapshot by ID.
	// Returns ledger.ErrNotFound if no such client exists.
	GetClient(ctx context.Context, clientID string) (*models.Client, error)

	// SaveClient overwrites an existing client record with the given
	// snapshot. Returns ledger.ErrNotFound if the client does not exist.
	SaveClient(ctx context.Context, client *models.Client) error

	// ListClients retrieves all client snapshots, oldest first.
	ListClients(ctx context.Context) ([]*models.Client, error)

	// Close releases any resources held by the store.
	Close() error
}
