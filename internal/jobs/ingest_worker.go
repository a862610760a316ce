package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/riverqueue/river"
	"golang.org/x/time/rate"

	"github.com/famring/hearth/internal/apperrors"
	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/observability"
	"github.com/famring/hearth/internal/vectorstore"
)

// Ingest job terminal statuses (bounded cardinality).
const (
	ingestStatusStored    = "stored"
	ingestStatusDiscarded = "discarded"
	ingestStatusFailed    = "failed"
	ingestStatusAbandoned = "abandoned"
)

// IngestWorkerDeps holds the dependencies for the ingest worker.
type IngestWorkerDeps struct {
	Store vectorstore.Store

	// RateLimiter throttles embedding calls made while storing. Optional.
	RateLimiter *rate.Limiter

	// Metrics may be nil (metrics disabled).
	Metrics observability.IngestMetrics
}

// IngestWorker embeds and stores answered questions delivered as jobs.
type IngestWorker struct {
	river.WorkerDefaults[QAIngestArgs]
	deps IngestWorkerDeps
}

// NewIngestWorker creates a new ingest worker with the given dependencies.
func NewIngestWorker(deps IngestWorkerDeps) *IngestWorker {
	return &IngestWorker{deps: deps}
}

// Work processes one ingest job.
func (w *IngestWorker) Work(ctx context.Context, job *river.Job[QAIngestArgs]) error {
	args := job.Args

	slog.Debug("processing qa ingest job",
		"job_id", job.ID,
		"family_id", args.FamilyID,
		"member_id", args.MemberID,
		"answer_length", len(args.Answer),
	)

	if err := args.Validate(); err != nil {
		slog.Error("qa ingest job has invalid payload",
			"job_id", job.ID,
			"family_id", args.FamilyID,
			"member_id", args.MemberID,
			"error", err,
		)
		w.recordOutcome(ctx, ingestStatusDiscarded)

		// Return nil to mark job as complete - a bad payload won't be fixed by retry
		return nil
	}

	// Wait for rate limit token if configured
	if w.deps.RateLimiter != nil {
		if err := w.deps.RateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	doc := models.QADocument{
		FamilyID:   args.FamilyID,
		MemberID:   args.MemberID,
		RoleLabel:  args.RoleLabel,
		Question:   args.Question,
		Answer:     args.Answer,
		AnsweredAt: args.AnsweredAt,
	}

	if err := w.deps.Store.Store(ctx, doc); err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			slog.Error("qa document rejected by store",
				"job_id", job.ID,
				"family_id", args.FamilyID,
				"member_id", args.MemberID,
				"error", err,
			)
			w.recordOutcome(ctx, ingestStatusDiscarded)

			// Complete without retry - the document itself is the problem
			return nil
		}

		slog.Error("failed to store qa document",
			"job_id", job.ID,
			"family_id", args.FamilyID,
			"member_id", args.MemberID,
			"error", err,
		)

		w.recordOutcome(ctx, ingestStatusFailed)

		return err // River will retry based on configuration
	}

	w.recordOutcome(ctx, ingestStatusStored)

	slog.Info("qa document ingested",
		"job_id", job.ID,
		"family_id", args.FamilyID,
		"member_id", args.MemberID,
	)

	return nil
}

func (w *IngestWorker) recordOutcome(ctx context.Context, status string) {
	if w.deps.Metrics != nil {
		w.deps.Metrics.RecordOutcome(ctx, status)
	}
}
