// Package main is the entry point for the rxconsole API server: the
// reporting and invoice-gap console for the pharmacy network back office.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rxconsole/internal/config"
	"rxconsole/internal/domain/console"
	"rxconsole/internal/domain/filter"
	v1 "rxconsole/internal/infrastructure/http/v1"
	"rxconsole/internal/infrastructure/upstream"
	"rxconsole/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Session context: report fetches triggered by filter commits run on
	// this context, not on individual request contexts.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting rxconsole server")

	// --- Upstream reporting API client ---
	client := upstream.New(upstream.Config{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		RetryCount: cfg.Upstream.RetryCount,
		RetryWait:  cfg.Upstream.RetryWait,
	})
	log.Infow("upstream client initialized", "base_url", cfg.Upstream.BaseURL)

	// --- Console session ---
	con := console.New(ctx, client, filter.DefaultPerPage)

	// Warm up the pharmacy directory. Failure degrades the pharmacy filter
	// but the console still serves everything else.
	if err := con.Directory.Load(ctx); err != nil {
		log.Warnw("pharmacy directory unavailable at startup", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:   log,
		Console:  con,
		Upstream: client,
	})

	// --- HTTP Server ---
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	cancel() // stop in-flight report fetches

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}

	log.Info("server stopped")
}
