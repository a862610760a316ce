// ingest enqueues one answered question for background embedding and storage.
// The worker process (cmd/worker) drains the queue; this command only inserts
// the job, so it returns without calling the embedding API.
//
// Usage:
//
//	ingest -family <uuid> -member <uuid> -role mom -question "..." -answer "..."
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/famring/hearth/internal/config"
	"github.com/famring/hearth/internal/jobs"
	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/observability"
	"github.com/famring/hearth/internal/service"
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
	var (
		familyFlag   = flag.String("family", "", "family UUID (required)")
		memberFlag   = flag.String("member", "", "member UUID (required)")
		roleFlag     = flag.String("role", "", "member role label, e.g. mom, dad, child")
		questionFlag = flag.String("question", "", "the question that was answered (required)")
		answerFlag   = flag.String("answer", "", "the member's answer (required)")
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

	ctx := context.Background()

	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)

		return exitFailure
	}
	defer db.Close()

	// Insert-only River client: no queues, no workers.
	riverClient, err := river.NewClient(riverpgxv5.New(db), &river.Config{})
	if err != nil {
		slog.Error("Failed to create River client", "error", err)

		return exitFailure
	}

	ingest := service.NewIngestService(jobs.NewRiverJobInserter(riverClient), slog.Default())

	doc := models.QADocument{
		FamilyID:   familyID,
		MemberID:   memberID,
		RoleLabel:  *roleFlag,
		Question:   *questionFlag,
		Answer:     *answerFlag,
		AnsweredAt: time.Now(),
	}

	if err := ingest.EnqueueAnswer(ctx, doc); err != nil {
		slog.Error("Enqueue failed", "error", err)

		return exitFailure
	}

	fmt.Printf("Enqueued answer from member %s on queue %q.\n", memberID, jobs.IngestQueueName)

	return exitSuccess
}
