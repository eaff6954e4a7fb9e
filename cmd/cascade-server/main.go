package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-cascade/components/regions"
	"github.com/goliatone/go-cascade/internal/api"
	"github.com/goliatone/go-cascade/internal/config"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
)

func main() {
	level := slog.LevelInfo
	cfg := config.Load()
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tree, err := loadTree(cfg.RegionsFile)
	if err != nil {
		log.Error("load regions", "error", err)
		os.Exit(1)
	}

	renderer, err := vanilla.New(vanilla.WithGlobalData(cfg.PageGlobals()))
	if err != nil {
		log.Error("init renderer", "error", err)
		os.Exit(1)
	}

	srv, err := api.NewServer(tree, renderer, log, cfg)
	if err != nil {
		log.Error("init server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting cascade server",
		"port", cfg.Port,
		"regions", srv.RegionsPath(),
		"guarded", cfg.APIKey != "",
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func loadTree(path string) (*regions.Tree, error) {
	if path == "" {
		return regions.DefaultTree()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return regions.LoadTree(f)
}
