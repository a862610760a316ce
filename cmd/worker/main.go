// worker runs the River ingest queue: it embeds answered questions and stores
// them in the vector store, off the request path. Jobs are enqueued through
// service.IngestService (see cmd/ingest); this process works them.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"golang.org/x/time/rate"

	"github.com/famring/hearth/internal/config"
	"github.com/famring/hearth/internal/jobs"
	"github.com/famring/hearth/internal/observability"
	"github.com/famring/hearth/internal/openai"
	"github.com/famring/hearth/internal/vectorstore"
	"github.com/famring/hearth/pkg/database"
)

const (
	ingestMaxWorkers = 4
	ingestJobTimeout = 60 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	observability.SetupLogging(cfg.LogLevel)

	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, database.WithAfterConnect(pgxvec.RegisterTypes))
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Metrics are optional; a nil meter provider disables them.
	meterProvider, err := observability.NewMeterProvider(cfg)
	if err != nil {
		slog.Error("Failed to create meter provider", "error", err)
		os.Exit(1)
	}

	var ingestMetrics observability.IngestMetrics

	if meterProvider != nil {
		ingestMetrics, err = observability.NewIngestMetrics(meterProvider.Meter("hearth"))
		if err != nil {
			slog.Error("Failed to create ingest metrics", "error", err)
			os.Exit(1)
		}
	}

	riverClient, err := initRiver(ctx, db, cfg, ingestMetrics)
	if err != nil {
		slog.Error("Failed to initialize River job queue", "error", err)
		os.Exit(1)
	}

	slog.Info("Ingest worker started",
		"queue", jobs.IngestQueueName,
		"max_workers", ingestMaxWorkers,
		"max_attempts", cfg.IngestMaxAttempts,
		"rate_limit_rps", cfg.EmbeddingRateLimitRPS,
	)

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down ingest worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop River (waits for in-flight jobs to complete)
	if err := riverClient.Stop(shutdownCtx); err != nil {
		slog.Error("River forced to shutdown", "error", err)
	}

	// Flush any pending metrics
	if err := observability.ShutdownMeterProvider(shutdownCtx, meterProvider); err != nil {
		slog.Error("Meter provider forced to shutdown", "error", err)
	}

	slog.Info("Ingest worker exited")
}

// initRiver initializes the River job queue client and the ingest worker.
func initRiver(
	ctx context.Context, db *pgxpool.Pool, cfg *config.Config, metrics observability.IngestMetrics,
) (*river.Client[pgx.Tx], error) {
	embedder := openai.NewClient(cfg.OpenAIAPIKey,
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithDimensions(cfg.EmbeddingDimensions),
	)

	store := vectorstore.NewPostgres(db, embedder, cfg.EmbeddingModel)

	// Rate limiter for embedding API calls; zero RPS means no limit
	var rateLimiter *rate.Limiter
	if cfg.EmbeddingRateLimitRPS > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(cfg.EmbeddingRateLimitRPS), 1)
	}

	ingestWorker := jobs.NewIngestWorker(jobs.IngestWorkerDeps{
		Store:       store,
		RateLimiter: rateLimiter,
		Metrics:     metrics,
	})

	workers := river.NewWorkers()
	river.AddWorker(workers, ingestWorker)

	riverClient, err := river.NewClient(riverpgxv5.New(db), &river.Config{
		Queues: map[string]river.QueueConfig{
			jobs.IngestQueueName: {MaxWorkers: ingestMaxWorkers},
		},
		Workers:      workers,
		ErrorHandler: &jobs.ErrorHandler{Metrics: metrics},
		JobTimeout:   ingestJobTimeout,
		MaxAttempts:  cfg.IngestMaxAttempts,
	})
	if err != nil {
		return nil, err
	}

	// Start River (begins processing jobs)
	if err := riverClient.Start(ctx); err != nil {
		return nil, err
	}

	return riverClient, nil
}
