package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tallyhq/tally/internal/api"
	"github.com/tallyhq/tally/internal/clock"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/storage/jsonfile"
	"github.com/tallyhq/tally/internal/storage/sqlite"
	"github.com/tallyhq/tally/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	var store storage.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		store, err = sqlite.New(cfg.DBPath)
	default:
		store, err = jsonfile.New(cfg.DBPath)
	}
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StoreBackend, "path", cfg.DBPath)

	ledger := service.New(context.Background(), store, clock.NewSystemClock())
	handler := api.NewRouter(ledger)

	// HTTP/2 without TLS, so gRPC-style clients can connect directly.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
