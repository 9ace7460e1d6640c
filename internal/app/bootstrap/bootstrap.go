package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ledgerservice "caravan/contexts/trip-finance/ledger-service"
	ledgerpostgres "caravan/contexts/trip-finance/ledger-service/adapters/postgres"
	ledgerworkers "caravan/contexts/trip-finance/ledger-service/application/workers"
	pollservice "caravan/contexts/trip-planning/poll-service"
	pollpostgres "caravan/contexts/trip-planning/poll-service/adapters/postgres"
	pollworkers "caravan/contexts/trip-planning/poll-service/application/workers"
	"caravan/internal/platform/config"
	"caravan/internal/platform/db"
	"caravan/internal/platform/httpserver"
	"caravan/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	ledgerRelay    ledgerworkers.OutboxRelay
	pollRelay      pollworkers.OutboxRelay
	runLedgerRelay bool
	runPollRelay   bool
	pollInterval   time.Duration
	logger         *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	ledgerModule := ledgerservice.NewModule(ledgerservice.Dependencies{
		Expenses:        ledgerRepo,
		Settlements:     ledgerRepo,
		Members:         ledgerRepo,
		Outbox:          ledgerRepo,
		Clock:           ledgerpostgres.SystemClock{},
		IDGenerator:     ledgerpostgres.UUIDGenerator{},
		DefaultCurrency: cfg.DefaultCurrency,
		Logger:          logger,
	})

	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	pollModule := pollservice.NewModule(pollservice.Dependencies{
		Proposals:   pollRepo,
		Votes:       pollRepo,
		Membership:  pollRepo,
		Outbox:      pollRepo,
		Clock:       pollpostgres.SystemClock{},
		IDGenerator: pollpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(ledgerModule, pollModule, logger, httpserver.Options{
		Addr:        normalizeAddr(cfg.HTTPPort),
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
	pollRepo := pollpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		ledgerRelay: ledgerworkers.OutboxRelay{
			Outbox:    ledgerRepo,
			Publisher: kafka,
			Clock:     ledgerpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		pollRelay: pollworkers.OutboxRelay{
			Outbox:    pollRepo,
			Publisher: kafka,
			Clock:     pollpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		runLedgerRelay: cfg.EnableLedgerOutboxRelay,
		runPollRelay:   cfg.EnablePollOutboxRelay,
		pollInterval:   cfg.OutboxPollInterval,
		logger:         logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.runLedgerRelay {
			if err := w.ledgerRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.runPollRelay {
			if err := w.pollRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
