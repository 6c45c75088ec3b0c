package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/martinsuchenak/migrateplan/internal/api"
	"github.com/martinsuchenak/migrateplan/internal/auth"
	"github.com/martinsuchenak/migrateplan/internal/config"
	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/mcp"
	"github.com/martinsuchenak/migrateplan/internal/storage"
	"github.com/martinsuchenak/migrateplan/internal/ui"
	"github.com/martinsuchenak/migrateplan/internal/worker"
	"github.com/paularlott/cli"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig holds configuration for running the server
type ServerConfig struct {
	Config     *config.Config
	Store      storage.Storage
	MCPServer  *mcp.Server
	APIHandler *api.Handler
	Scheduler  *worker.Scheduler // nil when snapshots are disabled
}

// RunServer serves until ctx is cancelled or SIGINT/SIGTERM arrives.
func RunServer(ctx context.Context, cfg *ServerConfig) error {
	handler := api.NewRouter(api.RouterConfig{
		Handler:     cfg.APIHandler,
		Verifier:    auth.NewAuthenticator(cfg.Store),
		AuthEnabled: cfg.Config.AuthEnabled,
		MCP:         http.HandlerFunc(cfg.MCPServer.HandleRequest),
		UI:          ui.AssetHandler(),
	})

	server := &http.Server{
		Addr:              cfg.Config.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Scheduler != nil {
		if err := cfg.Scheduler.Start(); err != nil {
			return err
		}
		defer cfg.Scheduler.Stop()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.Info("Starting migrateplan server", "addr", cfg.Config.ListenAddr)
	log.Info("Web UI available", "url", "http://localhost"+cfg.Config.ListenAddr)
	log.Info("API available", "url", "http://localhost"+cfg.Config.ListenAddr+"/api/")
	log.Info("MCP available", "url", "http://localhost"+cfg.Config.ListenAddr+"/mcp", "user_id", cfg.Config.MCPUserID)
	if cfg.Config.IsMCPEnabled() {
		log.Info("MCP authentication enabled")
	}
	if cfg.Config.AuthEnabled {
		log.Info("API authentication enabled")
	} else {
		log.Warn("API authentication disabled, identity is taken from X-User-ID")
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
			return err
		}
	}

	log.Info("Server stopped")
	return nil
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "server",
		Usage:       "Start the migrateplan server",
		Description: "Start the HTTP server with web UI, API, metrics and MCP endpoints",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info("Configuration loaded", "data_dir", cfg.DataDir, "listen_addr", cfg.ListenAddr)

			store, err := storage.NewSQLiteStorage(cfg.DataDir)
			if err != nil {
				log.Error("Failed to initialize storage", "error", err)
				return err
			}
			defer store.Close()
			log.Info("Storage initialized", "path", store.GetDatabasePath())

			var scheduler *worker.Scheduler
			if cfg.SnapshotsEnabled {
				scheduler, err = worker.NewScheduler(store, cfg.SnapshotSchedule, cfg.SnapshotWorkers)
				if err != nil {
					return err
				}
			} else {
				log.Info("Analytics snapshots disabled")
			}

			return RunServer(ctx, &ServerConfig{
				Config:     cfg,
				Store:      store,
				MCPServer:  mcp.NewServer(store, cfg.MCPAuthToken, cfg.MCPUserID),
				APIHandler: api.NewHandler(store),
				Scheduler:  scheduler,
			})
		},
	}
}
