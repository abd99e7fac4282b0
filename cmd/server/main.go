// Command server runs the maturity scoring service: a JSON HTTP API
// over the Postgres-backed assessment catalog, response, and
// evaluation stores.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/sentriq/maturion/infrastructure/curation"
	"github.com/sentriq/maturion/infrastructure/httpapi"
	"github.com/sentriq/maturion/infrastructure/middleware"
	"github.com/sentriq/maturion/infrastructure/postgres"
	"github.com/sentriq/maturion/internal/application"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration (optional)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := application.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = application.LoadConfig(*configPath); err != nil {
			logger.Error("config load failed", "error", err)
			os.Exit(1)
		}
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if cfg.Database.URL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	metrics := middleware.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	scorer := application.NewScorer(db, db, db, metrics, logger)
	responses := application.NewResponses(db, scorer)

	detector, err := curation.NewDetector(curation.DetectorConfig{
		Threshold:     cfg.Curation.SimilarityThreshold,
		CaseSensitive: cfg.Curation.CaseSensitive,
	})
	if err != nil {
		logger.Error("curation detector setup failed", "error", err)
		os.Exit(1)
	}

	var limiter *rate.Limiter
	if cfg.Server.WriteRatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Server.WriteRatePerSecond), cfg.Server.WriteBurst)
	}

	api := httpapi.New(scorer, responses, detector, db, limiter, logger)
	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.Server.ListenAddr)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
