package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"workledger/internal/auth"
	"workledger/internal/service"
	"workledger/internal/storage/sqlite"
)

// setupTestServer spins up the API over a temp-file SQLite store,
// without authentication.
func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "workledger-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create store: %v", err)
	}

	srv := New(service.NewLedgerService(store), nil, nil)
	ts := httptest.NewServer(srv.Routes())

	cleanup := func() {
		ts.Close()
		store.Close()
		os.RemoveAll(tempDir)
	}
	return ts, cleanup
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestClientFlow(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	// Create a client.
	resp := postJSON(t, ts.URL+"/api/v1/clients", map[string]any{
		"name": "Sharma", "rate": 10, "area": 100,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create client: status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		ID          string  `json:"id"`
		TotalAmount float64 `json:"total_amount"`
	}
	decodeBody(t, resp, &created)
	if created.TotalAmount != 1000 {
		t.Errorf("total_amount = %v, want 1000", created.TotalAmount)
	}

	// Record a payment.
	resp = postJSON(t, ts.URL+"/api/v1/clients/"+created.ID+"/payments", map[string]any{
		"amount": 400, "date": time.Unix(1700000000, 0).UTC().Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add payment: status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	// Detail view shows derived totals and cash flow.
	resp, err := http.Get(ts.URL + "/api/v1/clients/" + created.ID)
	if err != nil {
		t.Fatalf("get client failed: %v", err)
	}
	var detail struct {
		TotalPaid float64 `json:"total_paid"`
		Remaining float64 `json:"remaining"`
		CashFlow  struct {
			MoneyLeft float64 `json:"money_left"`
		} `json:"cash_flow"`
	}
	decodeBody(t, resp, &detail)
	if detail.TotalPaid != 400 || detail.Remaining != 600 {
		t.Errorf("detail totals = %+v, want paid=400 remaining=600", detail)
	}
	if detail.CashFlow.MoneyLeft != 400 {
		t.Errorf("money_left = %v, want 400", detail.CashFlow.MoneyLeft)
	}
}

func TestValidationAndNotFoundMapping(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	// Invalid amount → 400.
	resp := postJSON(t, ts.URL+"/api/v1/clients", map[string]any{
		"name": "Sharma", "rate": 0, "area": 100,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid rate: status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// Unknown client on a read → 404.
	getResp, err := http.Get(ts.URL + "/api/v1/clients/no-such-id")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown client: status = %d, want 404", getResp.StatusCode)
	}
	getResp.Body.Close()
}

func TestLoginDisabled(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	resp := postJSON(t, ts.URL+LoginPath, map[string]any{"password": "whatever"})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("login without config: status = %d, want 503", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLoginIssuesToken(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "workledger-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	srv := New(service.NewLedgerService(store), auth.NewPasswordVerifier(hash), jwtManager)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	// Wrong password rejected.
	resp := postJSON(t, ts.URL+LoginPath, map[string]any{"password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password: status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	// Correct password yields a token that validates.
	resp = postJSON(t, ts.URL+LoginPath, map[string]any{"password": "correct-horse"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatal("expected a token")
	}
	if err := jwtManager.Validate(body.Token); err != nil {
		t.Errorf("issued token failed validation: %v", err)
	}
}
