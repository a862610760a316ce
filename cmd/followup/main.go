// followup generates one follow-up question for an answered base question and
// stores the base document. It wires the full generation path (retrieval,
// prompting, dedup, retry) against the live vector store, so it doubles as a
// smoke test for a deployment.
//
// Usage:
//
//	followup -family <uuid> -member <uuid> -role mom -question "..." -answer "..." [-scope personal|family]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/famring/hearth/internal/config"
	"github.com/famring/hearth/internal/generation"
	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/observability"
	"github.com/famring/hearth/internal/openai"
	"github.com/famring/hearth/internal/service"
	"github.com/famring/hearth/internal/vectorstore"
	"github.com/famring/hearth/pkg/database"
)

const (
	scopePersonal = "personal"
	scopeFamily   = "family"

	exitSuccess = 0
	exitFailure = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		familyFlag   = flag.String("family", "", "family UUID (required)")
		memberFlag   = flag.String("member", "", "member UUID (required)")
		roleFlag     = flag.String("role", "", "member role label, e.g. mom, dad, child")
		questionFlag = flag.String("question", "", "the question that was answered (required)")
		answerFlag   = flag.String("answer", "", "the member's answer (required)")
		scopeFlag    = flag.String("scope", scopePersonal, "retrieval scope: personal or family")
	)

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)

		return exitFailure
	}

	observability.SetupLogging(cfg.LogLevel)

	familyID, err := uuid.Parse(*familyFlag)
	if err != nil {
		slog.Error("Invalid -family", "error", err)

		return exitFailure
	}

	memberID, err := uuid.Parse(*memberFlag)
	if err != nil {
		slog.Error("Invalid -member", "error", err)

		return exitFailure
	}

	if *questionFlag == "" || *answerFlag == "" {
		slog.Error("-question and -answer are required")

		return exitFailure
	}

	if *scopeFlag != scopePersonal && *scopeFlag != scopeFamily {
		slog.Error("Invalid -scope", "scope", *scopeFlag)

		return exitFailure
	}

	ctx := context.Background()

	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, database.WithAfterConnect(pgxvec.RegisterTypes))
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)

		return exitFailure
	}
	defer db.Close()

	client := openai.NewClient(cfg.OpenAIAPIKey,
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithDimensions(cfg.EmbeddingDimensions),
		openai.WithGenerationModel(cfg.GenerationModel),
	)

	embedder, err := service.NewCachedEmbedder(client, cfg.QueryEmbeddingCacheSize)
	if err != nil {
		slog.Error("Failed to create embedding cache", "error", err)

		return exitFailure
	}

	store := vectorstore.NewPostgres(db, embedder, cfg.EmbeddingModel)

	// Metrics are optional; a nil meter provider disables them.
	meterProvider, err := observability.NewMeterProvider(cfg)
	if err != nil {
		slog.Error("Failed to create meter provider", "error", err)

		return exitFailure
	}

	var genMetrics observability.GenerationMetrics

	if meterProvider != nil {
		defer func() {
			if err := observability.ShutdownMeterProvider(context.Background(), meterProvider); err != nil {
				slog.Error("Failed to shut down meter provider", "error", err)
			}
		}()

		genMetrics, err = observability.NewGenerationMetrics(meterProvider.Meter("hearth"))
		if err != nil {
			slog.Error("Failed to create generation metrics", "error", err)

			return exitFailure
		}
	}

	orchestrator := generation.NewOrchestrator(generation.Params{
		Store:               store,
		Backend:             openai.NewGenerator(client, cfg.GenerationTemperature),
		Embedder:            embedder,
		TopK:                cfg.RAGTopK,
		MinAnswers:          cfg.RAGMinAnswers,
		SimilarityThreshold: cfg.SimilarityThreshold,
		MaxRegeneration:     cfg.MaxRegeneration,
		Metrics:             genMetrics,
	})

	questions := service.NewQuestionService(orchestrator, store, slog.Default())

	base := models.QADocument{
		FamilyID:   familyID,
		MemberID:   memberID,
		RoleLabel:  *roleFlag,
		Question:   *questionFlag,
		Answer:     *answerFlag,
		AnsweredAt: time.Now(),
	}

	var result models.GenerationResult

	if *scopeFlag == scopeFamily {
		result, err = questions.GenerateFamily(ctx, base)
	} else {
		result, err = questions.GeneratePersonal(ctx, base)
	}

	if err != nil {
		slog.Error("Generation failed", "error", err)

		return exitFailure
	}

	fmt.Printf("Question: %s\n", result.Question)
	fmt.Printf("Level:    %d\n", result.Level.Int())
	fmt.Printf("Context:  %d document(s), %d regeneration(s)\n",
		result.Metadata.RAGCount, result.Metadata.RegenerationCount)

	if result.Metadata.SimilarityWarning {
		fmt.Println("Warning:  retry budget exhausted; question may resemble a previous one")
	}

	return exitSuccess
}
