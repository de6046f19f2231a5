package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bahjat/aeo-audit/internal/analyzer"
	"github.com/Bahjat/aeo-audit/internal/audit"
	"github.com/Bahjat/aeo-audit/internal/fetch"
	"github.com/Bahjat/aeo-audit/internal/platform/config"
	"github.com/Bahjat/aeo-audit/internal/platform/logger"
	"github.com/Bahjat/aeo-audit/internal/platform/metrics"
	"github.com/Bahjat/aeo-audit/internal/platform/middleware"
	"github.com/Bahjat/aeo-audit/internal/scan"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aeo-audit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	m := metrics.New()

	fetcher := fetch.NewHTTPClient(fetch.Config{
		Timeout:      cfg.FetchTimeout,
		MaxRedirects: cfg.FetchMaxRedirects,
		RetryMax:     cfg.FetchRetryMax,
		Logger:       log,
	})
	checker := scan.NewLinkChecker(scan.LinkCheckerConfig{
		Concurrency: cfg.LinkCheckConcurrency,
		Timeout:     cfg.LinkCheckTimeout,
		RPS:         cfg.LinkCheckRPS,
		Checks:      m.LinkChecks,
	})
	engine := audit.NewEngine(fetcher, checker, audit.Options{
		MaxWords:  cfg.MaxWords,
		SchemaCap: cfg.SchemaCap,
		Logger:    log,
	})

	svc := analyzer.NewService(engine, log, m)
	transport := analyzer.NewTransport(svc, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)
	mux.Handle("GET /metrics", m.Handler())

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           middleware.RequestID(middleware.Logging(log)(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
