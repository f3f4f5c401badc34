package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/dexter-show/backend/internal/config"
	"github.com/zhouzirui/dexter-show/backend/internal/handler"
	"github.com/zhouzirui/dexter-show/backend/internal/logging"
	"github.com/zhouzirui/dexter-show/backend/internal/model/catalog"
	catalogService "github.com/zhouzirui/dexter-show/backend/internal/service/catalog"
	"github.com/zhouzirui/dexter-show/backend/internal/service/events"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("failed to load .env file, continuing with system environment variables only", zap.Error(envErr))
	}

	seed, err := loadSeed(cfg.Catalog)
	if err != nil {
		logger.Fatal("failed to load catalog seed", zap.Error(err))
	}
	store := catalog.NewMemoryStore(seed)
	logger.Info("catalog seeded",
		zap.Int("characters", len(seed.Characters)),
		zap.Int("seasons", len(seed.Seasons)),
		zap.String("seed_file", cfg.Catalog.SeedFile),
	)

	hub := events.NewHub(cfg.Events.Buffer, logger.Named("events"))
	catalogSvc := catalogService.NewService(store, hub, logger)

	router := handler.NewRouter(catalogSvc, hub, handler.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PingInterval:   cfg.Events.PingInterval,
		Logger:         logger,
	})

	startServer(ctx, cfg.Server, router, hub, logger)
}

func loadSeed(cfg config.CatalogConfig) (catalog.Seed, error) {
	if cfg.SeedFile == "" {
		return catalog.DefaultSeed(), nil
	}
	return catalog.LoadSeedFile(cfg.SeedFile)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, hub *events.Hub, logger *zap.Logger) {
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	// Streaming subscribers only return once the hub is closed.
	srv.RegisterOnShutdown(hub.Close)

	ln, err := net.Listen("tcp", serverCfg.Addr)
	if err != nil {
		logger.Fatal("failed to bind listener", zap.String("addr", serverCfg.Addr), zap.Error(err))
	}

	logger.Info("Dexter Show catalog listening", zap.Stringer("addr", ln.Addr()))
	if err := runServer(ctx, srv, ln, serverCfg.ShutdownTimeout); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// runServer serves on ln until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	select {
	case err := <-served:
		return serveResult(err)
	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		_ = srv.Close()
		<-served
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return serveResult(<-served)
}

func serveResult(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serve: %w", err)
}
