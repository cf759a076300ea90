// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"workledger/internal/ledger"
	"workledger/internal/models"
	"workledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
//
// Each client row holds the full record as one self-describing JSON
// document, alongside a few indexed columns for listing. Whole-document
// rows keep the snapshot read/write contract trivially atomic: one row
// per client, one statement per round trip.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateClient persists a new client record to the database.
func (s *SQLiteStore) CreateClient(ctx context.Context, client *models.Client) error {
	// Generate identity if not set
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	if client.CreatedAt == 0 {
		client.CreatedAt = time.Now().Unix()
	}

	doc, err := json.Marshal(client)
	if err != nil {
		return &ledger.StorageError{Op: "encode client", Err: err}
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO clients (id, name, created_at, doc) VALUES (?, ?, ?, ?)",
		client.ID, client.Name, client.CreatedAt, string(doc),
	)
	if err != nil {
		return &ledger.StorageError{Op: "insert client", Err: err}
	}

	return nil
}

// GetClient retrieves a full client snapshot by ID.
func (s *SQLiteStore) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM clients WHERE id = ?",
		clientID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %s: %w", clientID, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, &ledger.StorageError{Op: "get client", Err: err}
	}

	client := &models.Client{}
	if err := json.Unmarshal([]byte(doc), client); err != nil {
		return nil, &ledger.StorageError{Op: "decode client", Err: err}
	}

	return client, nil
}

// SaveClient overwrites an existing client record with the given snapshot.
func (s *SQLiteStore) SaveClient(ctx context.Context, client *models.Client) error {
	doc, err := json.Marshal(client)
	if err != nil {
		return &ledger.StorageError{Op: "encode client", Err: err}
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE clients SET name = ?, doc = ? WHERE id = ?",
		client.Name, string(doc), client.ID,
	)
	if err != nil {
		return &ledger.StorageError{Op: "save client", Err: err}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return &ledger.StorageError{Op: "save client", Err: err}
	}
	if rows == 0 {
		return fmt.Errorf("client %s: %w", client.ID, ledger.ErrNotFound)
	}

	return nil
}

// ListClients retrieves all client snapshots, oldest first.
func (s *SQLiteStore) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT doc FROM clients ORDER BY created_at, id",
	)
	if err != nil {
		return nil, &ledger.StorageError{Op: "list clients", Err: err}
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, &ledger.StorageError{Op: "scan client", Err: err}
		}
		client := &models.Client{}
		if err := json.Unmarshal([]byte(doc), client); err != nil {
			return nil, &ledger.StorageError{Op: "decode client", Err: err}
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, &ledger.StorageError{Op: "iterate clients", Err: err}
	}

	return clients, nil
}
