package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"workledger/internal/auth"
	"workledger/internal/middleware"
	"workledger/internal/server"
	"workledger/internal/service"
	"workledger/internal/storage/sqlite"
	"workledger/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/ledger.db")
	port := getEnv("PORT", "8080")

	// Initialize SQLite storage
	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	ledgerService := service.NewLedgerService(store)

	// Auth is optional: both AUTH_SECRET and PASSWORD_HASH must be set
	// to enable it. Without them the API runs open (local single-user use).
	var (
		verifier   *auth.PasswordVerifier
		jwtManager *auth.JWTManager
	)
	secret := os.Getenv("AUTH_SECRET")
	passwordHash := os.Getenv("PASSWORD_HASH")
	if secret != "" && passwordHash != "" {
		verifier = auth.NewPasswordVerifier(passwordHash)
		jwtManager = auth.NewJWTManager(secret, 24*time.Hour)
		slog.Info("Authentication enabled")
	} else {
		slog.Warn("Authentication disabled; set AUTH_SECRET and PASSWORD_HASH to enable")
	}

	api := server.New(ledgerService, verifier, jwtManager)
	apiMux := api.Routes()

	root := http.NewServeMux()
	root.Handle("/api/v1/", middleware.RequireAuth(jwtManager, server.LoginPath)(apiMux))
	root.Handle("/metrics", promhttp.Handler())

	// Metrics resolves route patterns against the API mux so that path
	// IDs never become label values.
	handler := middleware.Logging(middleware.CORS(middleware.Metrics(apiMux)(root)))

	// h2c allows HTTP/2 without TLS for local and reverse-proxied setups.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
