// Package service implements the ledger operations over a storage.Store.
//
// Every mutating operation is one read-modify-write cycle: load the client
// snapshot, apply the change and its history record, refresh the cash-flow
// snapshot, save. There is a single logical writer, so no locking.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"workledger/internal/history"
	"workledger/internal/ledger"
	"workledger/internal/models"
	"workledger/internal/storage"
)

// LedgerService exposes the client/worker ledger operations.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// CreateClient creates a client with a contracted total of rate × area.
// The total is fixed here and never recomputed. A client_created event
// opens the history log.
func (s *LedgerService) CreateClient(ctx context.Context, name string, rate, area float64) (*models.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledger.Validationf("client name is required")
	}
	if rate <= 0 {
		return nil, ledger.Validationf("rate must be greater than 0")
	}
	if area <= 0 {
		return nil, ledger.Validationf("area must be greater than 0")
	}

	now := time.Now()
	totalAmount := rate * area
	client := &models.Client{
		Name:        name,
		Rate:        rate,
		Area:        area,
		TotalAmount: totalAmount,
		Payments:    []models.Payment{},
		Workers:     []models.Worker{},
		History:     []models.HistoryEvent{history.ClientCreated(name, totalAmount, now)},
	}

	if err := s.store.CreateClient(ctx, client); err != nil {
		slog.Error("CreateClient failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Client created", "client_id", client.ID, "name", name, "total_amount", totalAmount)
	return client, nil
}

// GetClient retrieves a full client snapshot.
func (s *LedgerService) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	return s.store.GetClient(ctx, clientID)
}

// ListClients retrieves all clients, oldest first.
func (s *LedgerService) ListClients(ctx context.Context) ([]*models.Client, error) {
	return s.store.ListClients(ctx)
}

// AddClientPayment records a payment received from the client. The running
// totals are recomputed and written into a client_payment history event,
// and the cash-flow snapshot is refreshed.
func (s *LedgerService) AddClientPayment(ctx context.Context, clientID string, amount float64, at time.Time) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ledger.Validationf("payment amount must be greater than 0")
	}

	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, ledger.Validationf("client %s not found", clientID)
	}
	if err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now()
	}
	payment := models.Payment{
		ID:     uuid.New().String(),
		Amount: amount,
		Date:   at.Unix(),
	}
	client.Payments = append(client.Payments, payment)

	bal := ledger.BalanceOf(client)
	client.History = append(client.History, history.ClientPayment(amount, bal.TotalPaid, bal.Remaining, at))
	s.refreshCashFlow(client, at)

	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("AddClientPayment failed", "client_id", clientID, "error", err)
		return nil, err
	}

	slog.Info("Client payment added",
		"client_id", clientID,
		"payment_id", payment.ID,
		"amount", amount,
		"total_paid", bal.TotalPaid,
		"remaining", bal.Remaining,
	)
	return &payment, nil
}

// RemoveClientPayment deletes a payment received from the client. A missing
// client or payment is a silent no-op. History entries are pruned by amount:
// every client_payment event matching the removed payment's amount goes,
// even ones recorded for a different payment of the same amount. No new
// history entry is written; the cash-flow snapshot is refreshed.
func (s *LedgerService) RemoveClientPayment(ctx context.Context, clientID, paymentID string) error {
	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, ledger.ErrNotFound) {
		slog.Warn("RemoveClientPayment: client not found", "client_id", clientID)
		return nil
	}
	if err != nil {
		return err
	}

	idx := -1
	for i := range client.Payments {
		if client.Payments[i].ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.Warn("RemoveClientPayment: payment not found", "client_id", clientID, "payment_id", paymentID)
		return nil
	}

	amount := client.Payments[idx].Amount
	client.Payments = append(client.Payments[:idx], client.Payments[idx+1:]...)
	client.History = history.RemoveClientPayments(client.History, amount)
	s.refreshCashFlow(client, time.Now())

	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("RemoveClientPayment failed", "client_id", clientID, "error", err)
		return err
	}

	slog.Info("Client payment removed", "client_id", clientID, "payment_id", paymentID, "amount", amount)
	return nil
}

// AddWorker hires a worker against the client with a fixed contracted pay.
func (s *LedgerService) AddWorker(ctx context.Context, clientID, name string, totalPay float64) (*models.Worker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledger.Validationf("worker name is required")
	}
	if totalPay <= 0 {
		return nil, ledger.Validationf("total pay must be greater than 0")
	}

	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, ledger.Validationf("client %s not found", clientID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	worker := models.Worker{
		ID:       uuid.New().String(),
		Name:     name,
		TotalPay: totalPay,
		Payments: []models.Payment{},
	}
	client.Workers = append(client.Workers, worker)
	client.History = append(client.History, history.WorkerAdded(name, totalPay, now))

	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("AddWorker failed", "client_id", clientID, "error", err)
		return nil, err
	}

	slog.Info("Worker added", "client_id", clientID, "worker_id", worker.ID, "name", name, "total_pay", totalPay)
	return &worker, nil
}

// AddWorkerPayment records a payment to a worker. The worker's settlement
// figures are recomputed into a worker_payment history event and the
// cash-flow snapshot is refreshed. A missing client or worker is a silent
// no-op returning a nil payment.
func (s *LedgerService) AddWorkerPayment(ctx context.Context, clientID, workerID string, amount float64, at time.Time) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ledger.Validationf("payment amount must be greater than 0")
	}

	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, ledger.ErrNotFound) {
		slog.Warn("AddWorkerPayment: client not found", "client_id", clientID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	worker := findWorker(client, workerID)
	if worker == nil {
		slog.Warn("AddWorkerPayment: worker not found", "client_id", clientID, "worker_id", workerID)
		return nil, nil
	}

	if at.IsZero() {
		at = time.Now()
	}
	payment := models.Payment{
		ID:     uuid.New().String(),
		Amount: amount,
		Date:   at.Unix(),
	}
	worker.Payments = append(worker.Payments, payment)

	bal := ledger.BalanceOfWorker(worker)
	client.History = append(client.History,
		history.WorkerPayment(worker.Name, amount, bal.TotalPaid, bal.Due, bal.Advance, at))
	s.refreshCashFlow(client, at)

	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("AddWorkerPayment failed", "client_id", clientID, "worker_id", workerID, "error", err)
		return nil, err
	}

	slog.Info("Worker payment added",
		"client_id", clientID,
		"worker_id", workerID,
		"payment_id", payment.ID,
		"amount", amount,
		"total_paid", bal.TotalPaid,
		"due", bal.Due,
		"advance", bal.Advance,
	)
	return &payment, nil
}

// RemoveWorkerPayment deletes a payment made to a worker. Missing entities
// are a silent no-op. Unlike client payments, worker_payment history
// entries are never removed retroactively; only the payment itself goes.
// The cash-flow snapshot is refreshed.
func (s *LedgerService) RemoveWorkerPayment(ctx context.Context, clientID, workerID, paymentID string) error {
	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, ledger.ErrNotFound) {
		slog.Warn("RemoveWorkerPayment: client not found", "client_id", clientID)
		return nil
	}
	if err != nil {
		return err
	}

	worker := findWorker(client, workerID)
	if worker == nil {
		slog.Warn("RemoveWorkerPayment: worker not found", "client_id", clientID, "worker_id", workerID)
		return nil
	}

	idx := -1
	for i := range worker.Payments {
		if worker.Payments[i].ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.Warn("RemoveWorkerPayment: payment not found",
			"client_id", clientID, "worker_id", workerID, "payment_id", paymentID)
		return nil
	}

	worker.Payments = append(worker.Payments[:idx], worker.Payments[idx+1:]...)
	s.refreshCashFlow(client, time.Now())

	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("RemoveWorkerPayment failed", "client_id", clientID, "worker_id", workerID, "error", err)
		return err
	}

	slog.Info("Worker payment removed", "client_id", clientID, "worker_id", workerID, "payment_id", paymentID)
	return nil
}

// RemoveWorker deletes a worker and all of its payments. A worker_deleted
// event is captured before the removal; the worker's earlier worker_payment
// events stay in the log. Missing entities are a silent no-op. The
// cash-flow snapshot is refreshed after the worker's payments are gone.
func (s *LedgerService) RemoveWorker(ctx context.Context, clientID, workerID string) error {
	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, ledger.ErrNotFound) {
		slog.Warn("RemoveWorker: client not found", "client_id", clientID)
		return nil
	}
	if err != nil {
		return err
	}

	idx := -1
	for i := range client.Workers {
		if client.Workers[i].ID == workerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.Warn("RemoveWorker: worker not found", "client_id", clientID, "worker_id", workerID)
		return nil
	}

	name := client.Workers[idx].Name
	client.History = append(client.History, history.WorkerDeleted(name, time.Now()))
	client.Workers = append(client.Workers[:idx], client.Workers[idx+1:]...)
	s.refreshCashFlow(client, time.Now())

	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("RemoveWorker failed", "client_id", clientID, "worker_id", workerID, "error", err)
		return err
	}

	slog.Info("Worker removed", "client_id", clientID, "worker_id", workerID, "name", name)
	return nil
}

// CashFlow computes the client's cash flow. When the client has at least
// one payment on either side, the snapshot is also upserted into history
// and persisted; with no payments at all this is a pure read.
func (s *LedgerService) CashFlow(ctx context.Context, clientID string) (ledger.CashFlow, error) {
	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return ledger.CashFlow{}, err
	}

	cf := ledger.ComputeCashFlow(client)
	if !ledger.HasPayments(client) {
		return cf, nil
	}

	client.History = history.UpsertCashFlow(client.History, history.CashFlowSnapshot(cf, time.Now()))
	if err := s.store.SaveClient(ctx, client); err != nil {
		slog.Error("CashFlow snapshot save failed", "client_id", clientID, "error", err)
		return ledger.CashFlow{}, err
	}

	return cf, nil
}

// HistoryEntry is one history event annotated with its owning client,
// for the merged timeline view.
type HistoryEntry struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	models.HistoryEvent
}

// History returns history events ordered by date, oldest first. With an
// empty clientID the timelines of all clients are merged; otherwise only
// the given client's log is returned.
func (s *LedgerService) History(ctx context.Context, clientID string) ([]HistoryEntry, error) {
	var clients []*models.Client
	if clientID == "" {
		all, err := s.store.ListClients(ctx)
		if err != nil {
			return nil, err
		}
		clients = all
	} else {
		client, err := s.store.GetClient(ctx, clientID)
		if err != nil {
			return nil, err
		}
		clients = []*models.Client{client}
	}

	var entries []HistoryEntry
	for _, c := range clients {
		for _, e := range c.History {
			entries = append(entries, HistoryEntry{
				ClientID:     c.ID,
				ClientName:   c.Name,
				HistoryEvent: e,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries, nil
}

// refreshCashFlow upserts the cash-flow snapshot on the in-memory client.
// It runs after every payment mutation, before the snapshot is saved.
// With no payments left the history is untouched: a stale cash_flow entry
// from before the last removal stays as-is.
func (s *LedgerService) refreshCashFlow(client *models.Client, at time.Time) {
	if !ledger.HasPayments(client) {
		return
	}
	cf := ledger.ComputeCashFlow(client)
	client.History = history.UpsertCashFlow(client.History, history.CashFlowSnapshot(cf, at))
}

// findWorker returns a pointer into the client's worker list, or nil.
func findWorker(client *models.Client, workerID string) *models.Worker {
	for i := range client.Workers {
		if client.Workers[i].ID == workerID {
			return &client.Workers[i]
		}
	}
	return nil
}
