package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/catalog"
	"github.com/osse101/CraftCalc_Go/internal/concurrency"
	"github.com/osse101/CraftCalc_Go/internal/config"
	"github.com/osse101/CraftCalc_Go/internal/server"
	"github.com/osse101/CraftCalc_Go/internal/shoppinglist"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	cat, err := loadCatalog(cfg)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	engine := calculator.New(cat, cfg.EngineOptions())
	lists := shoppinglist.NewService(
		shoppinglist.NewMemoryStore(cfg.SessionCapacity, cfg.SessionTTL),
		cat,
		engine,
		concurrency.NewLockManager(),
	)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, cat, engine, lists)

	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, /api/v1 is unauthenticated")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// loadCatalog reads the HCL catalog when configured, otherwise the JSON pair.
// Validation warnings are logged and do not stop startup.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var (
		cat      *catalog.Catalog
		warnings []string
		err      error
	)
	if cfg.CatalogHCLPath != "" {
		cat, warnings, err = catalog.OpenHCL(cfg.CatalogHCLPath)
	} else {
		cat, warnings, err = catalog.Open(cfg.RecipesPath, cfg.RawMaterialsPath)
	}
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		slog.Warn("Catalog warning", "detail", w)
	}
	slog.Info("Catalog loaded",
		"recipes", cat.RecipeCount(),
		"raw_materials", len(cat.RawMaterials()))
	return cat, nil
}
