// backfill-embeddings re-embeds stored documents whose embedding was produced
// by a model other than the currently configured one. Run this after changing
// EMBEDDING_MODEL so nearest-neighbor search never mixes vector spaces.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"golang.org/x/time/rate"

	"github.com/famring/hearth/internal/config"
	"github.com/famring/hearth/internal/jobs"
	"github.com/famring/hearth/internal/observability"
	"github.com/famring/hearth/internal/openai"
	"github.com/famring/hearth/pkg/database"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)

		return exitFailure
	}

	observability.SetupLogging(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, database.WithAfterConnect(pgxvec.RegisterTypes))
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)

		return exitFailure
	}
	defer db.Close()

	embedder := openai.NewClient(cfg.OpenAIAPIKey,
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithDimensions(cfg.EmbeddingDimensions),
	)

	var limiter *rate.Limiter
	if cfg.EmbeddingRateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EmbeddingRateLimitRPS), 1)
	}

	stats, err := jobs.ReembedStale(ctx, db, embedder, cfg.EmbeddingModel, limiter)
	if err != nil {
		slog.Error("Backfill failed", "error", err)

		return exitFailure
	}

	slog.Info("Backfill complete", "reembedded", stats.Reembedded, "errors", stats.Errors)

	fmt.Printf("Re-embedded %d document(s), %d error(s).\n", stats.Reembedded, stats.Errors)

	if stats.Errors > 0 {
		return exitFailure
	}

	return exitSuccess
}
