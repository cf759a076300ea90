// Package server exposes the ledger as a JSON HTTP API under /api/v1.
package server

import (
	"net/http"

	"workledger/internal/auth"
	"workledger/internal/service"
)

// Server holds the API dependencies and registers the routes.
type Server struct {
	ledger   *service.LedgerService
	verifier *auth.PasswordVerifier // nil when auth is disabled
	jwt      *auth.JWTManager       // nil when auth is disabled
}

// New creates a Server. verifier and jwt may both be nil to run the API
// without authentication (local single-user deployment).
func New(ledger *service.LedgerService, verifier *auth.PasswordVerifier, jwt *auth.JWTManager) *Server {
	return &Server{ledger: ledger, verifier: verifier, jwt: jwt}
}

// LoginPath is exempted from the auth middleware.
const LoginPath = "/api/v1/login"

// Routes returns the API mux. Client records are never deleted, so there
// is no DELETE on the clients collection itself.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+LoginPath, s.handleLogin)

	mux.HandleFunc("POST /api/v1/clients", s.handleCreateClient)
	mux.HandleFunc("GET /api/v1/clients", s.handleListClients)
	mux.HandleFunc("GET /api/v1/clients/{id}", s.handleGetClient)

	mux.HandleFunc("POST /api/v1/clients/{id}/payments", s.handleAddClientPayment)
	mux.HandleFunc("DELETE /api/v1/clients/{id}/payments/{paymentID}", s.handleRemoveClientPayment)

	mux.HandleFunc("POST /api/v1/clients/{id}/workers", s.handleAddWorker)
	mux.HandleFunc("DELETE /api/v1/clients/{id}/workers/{workerID}", s.handleRemoveWorker)
	mux.HandleFunc("POST /api/v1/clients/{id}/workers/{workerID}/payments", s.handleAddWorkerPayment)
	mux.HandleFunc("DELETE /api/v1/clients/{id}/workers/{workerID}/payments/{paymentID}", s.handleRemoveWorkerPayment)

	mux.HandleFunc("GET /api/v1/clients/{id}/cashflow", s.handleCashFlow)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)

	return mux
}
