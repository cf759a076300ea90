package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"workledger/internal/ledger"
	"workledger/internal/models"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "workledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateClient generates ID and CreatedAt", func(t *testing.T) {
		client := &models.Client{
			Name:        "Sharma",
			Rate:        10,
			Area:        100,
			TotalAmount: 1000,
		}

		if err := store.CreateClient(ctx, client); err != nil {
			t.Fatalf("CreateClient failed: %v", err)
		}

		if client.ID == "" {
			t.Error("Expected client ID to be generated")
		}
		if client.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetClient retrieves complete snapshot", func(t *testing.T) {
		original := &models.Client{
			Name:        "Verma",
			Rate:        12,
			Area:        50,
			TotalAmount: 600,
			Payments: []models.Payment{
				{ID: "p1", Amount: 200, Date: 1700000000},
			},
			Workers: []models.Worker{
				{ID: "w1", Name: "Ramesh", TotalPay: 300, Payments: []models.Payment{
					{ID: "wp1", Amount: 100, Date: 1700000100},
				}},
			},
			History: []models.HistoryEvent{
				{Kind: models.EventClientCreated, Date: 1700000000, Message: `Client "Verma" created with total amount ₹600.00`},
			},
		}

		if err := store.CreateClient(ctx, original); err != nil {
			t.Fatalf("CreateClient failed: %v", err)
		}

		retrieved, err := store.GetClient(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetClient failed: %v", err)
		}

		if retrieved.ID != original.ID {
			t.Errorf("ID mismatch: got %s, want %s", retrieved.ID, original.ID)
		}
		if retrieved.TotalAmount != original.TotalAmount {
			t.Errorf("TotalAmount mismatch: got %f, want %f", retrieved.TotalAmount, original.TotalAmount)
		}
		if len(retrieved.Payments) != 1 || retrieved.Payments[0].Amount != 200 {
			t.Errorf("Payments not round-tripped: %+v", retrieved.Payments)
		}
		if len(retrieved.Workers) != 1 || len(retrieved.Workers[0].Payments) != 1 {
			t.Errorf("Workers not round-tripped: %+v", retrieved.Workers)
		}
		if len(retrieved.History) != 1 || retrieved.History[0].Kind != models.EventClientCreated {
			t.Errorf("History not round-tripped: %+v", retrieved.History)
		}
	})

	t.Run("GetClient returns ErrNotFound for nonexistent client", func(t *testing.T) {
		_, err := store.GetClient(ctx, "nonexistent-id")
		if !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveClient overwrites the snapshot", func(t *testing.T) {
		client := &models.Client{Name: "Gupta", Rate: 5, Area: 10, TotalAmount: 50}
		if err := store.CreateClient(ctx, client); err != nil {
			t.Fatalf("CreateClient failed: %v", err)
		}

		client.Payments = append(client.Payments, models.Payment{ID: "p1", Amount: 25, Date: 1700000000})
		if err := store.SaveClient(ctx, client); err != nil {
			t.Fatalf("SaveClient failed: %v", err)
		}

		retrieved, err := store.GetClient(ctx, client.ID)
		if err != nil {
			t.Fatalf("GetClient failed: %v", err)
		}
		if len(retrieved.Payments) != 1 {
			t.Errorf("Expected 1 payment after save, got %d", len(retrieved.Payments))
		}
	})

	t.Run("SaveClient returns ErrNotFound for nonexistent client", func(t *testing.T) {
		err := store.SaveClient(ctx, &models.Client{ID: "nonexistent-id", Name: "Ghost"})
		if !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListClients returns oldest first", func(t *testing.T) {
		clients, err := store.ListClients(ctx)
		if err != nil {
			t.Fatalf("ListClients failed: %v", err)
		}
		if len(clients) < 3 {
			t.Fatalf("Expected at least 3 clients, got %d", len(clients))
		}
		for i := 1; i < len(clients); i++ {
			if clients[i].CreatedAt < clients[i-1].CreatedAt {
				t.Errorf("Clients not ordered by CreatedAt at index %d", i)
			}
		}
	})
}
