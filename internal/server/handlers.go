package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"workledger/internal/auth"
	"workledger/internal/ledger"
	"workledger/internal/models"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes:
// ValidationError → 400, ErrNotFound → 404, anything else → 500.
func writeError(w http.ResponseWriter, err error) {
	var verr *ledger.ValidationError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decode reads the request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// parseDate parses an optional RFC 3339 timestamp; empty means "now",
// decided by the service layer.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.verifier == nil || s.jwt == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "authentication is not configured"})
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, ledger.Validationf("invalid request body: %v", err))
		return
	}

	if err := s.verifier.Verify(req.Password); err != nil {
		slog.Warn("Login rejected", "remote_addr", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := s.jwt.Generate()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string  `json:"name"`
		Rate float64 `json:"rate"`
		Area float64 `json:"area"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, ledger.Validationf("invalid request body: %v", err))
		return
	}

	client, err := s.ledger.CreateClient(r.Context(), req.Name, req.Rate, req.Area)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clientDetailView(client))
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.ledger.ListClients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]clientSummary, len(clients))
	for i, c := range clients {
		summaries[i] = clientSummaryView(c)
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": summaries})
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")

	// Loading the detail view refreshes the cash-flow snapshot first,
	// so the returned history already carries the latest figures.
	if _, err := s.ledger.CashFlow(r.Context(), clientID); err != nil {
		writeError(w, err)
		return
	}

	client, err := s.ledger.GetClient(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientDetailView(client))
}

func (s *Server) handleAddClientPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, ledger.Validationf("invalid request body: %v", err))
		return
	}
	at, err := parseDate(req.Date)
	if err != nil {
		writeError(w, ledger.Validationf("invalid date: %v", err))
		return
	}

	payment, err := s.ledger.AddClientPayment(r.Context(), r.PathValue("id"), req.Amount, at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleRemoveClientPayment(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.RemoveClientPayment(r.Context(), r.PathValue("id"), r.PathValue("paymentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name"`
		TotalPay float64 `json:"total_pay"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, ledger.Validationf("invalid request body: %v", err))
		return
	}

	worker, err := s.ledger.AddWorker(r.Context(), r.PathValue("id"), req.Name, req.TotalPay)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workerView(worker))
}

func (s *Server) handleRemoveWorker(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.RemoveWorker(r.Context(), r.PathValue("id"), r.PathValue("workerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWorkerPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, ledger.Validationf("invalid request body: %v", err))
		return
	}
	at, err := parseDate(req.Date)
	if err != nil {
		writeError(w, ledger.Validationf("invalid date: %v", err))
		return
	}

	payment, err := s.ledger.AddWorkerPayment(r.Context(), r.PathValue("id"), r.PathValue("workerID"), req.Amount, at)
	if err != nil {
		writeError(w, err)
		return
	}
	if payment == nil {
		// Lenient no-op: the referenced client or worker is gone.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (s *Server) handleRemoveWorkerPayment(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.RemoveWorkerPayment(r.Context(),
		r.PathValue("id"), r.PathValue("workerID"), r.PathValue("paymentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	cf, err := s.ledger.CashFlow(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cf)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.History(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// clientSummary is the list-view projection of a client.
type clientSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	TotalPaid   float64 `json:"total_paid"`
	Remaining   float64 `json:"remaining"`
	CreatedAt   int64   `json:"created_at"`
}

func clientSummaryView(c *models.Client) clientSummary {
	bal := ledger.BalanceOf(c)
	return clientSummary{
		ID:          c.ID,
		Name:        c.Name,
		TotalAmount: c.TotalAmount,
		TotalPaid:   bal.TotalPaid,
		Remaining:   bal.Remaining,
		CreatedAt:   c.CreatedAt,
	}
}

// clientDetail is the full client record plus its derived figures.
type clientDetail struct {
	*models.Client
	TotalPaid float64         `json:"total_paid"`
	Remaining float64         `json:"remaining"`
	Workers   []workerDetail  `json:"workers"`
	CashFlow  ledger.CashFlow `json:"cash_flow"`
}

type workerDetail struct {
	*models.Worker
	TotalPaid float64 `json:"total_paid"`
	Due       float64 `json:"due"`
	Advance   float64 `json:"advance"`
}

func workerView(w *models.Worker) workerDetail {
	bal := ledger.BalanceOfWorker(w)
	return workerDetail{
		Worker:    w,
		TotalPaid: bal.TotalPaid,
		Due:       bal.Due,
		Advance:   bal.Advance,
	}
}

func clientDetailView(c *models.Client) clientDetail {
	bal := ledger.BalanceOf(c)
	workers := make([]workerDetail, len(c.Workers))
	for i := range c.Workers {
		workers[i] = workerView(&c.Workers[i])
	}
	return clientDetail{
		Client:    c,
		TotalPaid: bal.TotalPaid,
		Remaining: bal.Remaining,
		Workers:   workers,
		CashFlow:  ledger.ComputeCashFlow(c),
	}
}
