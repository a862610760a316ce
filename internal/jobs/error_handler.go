package jobs

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"github.com/famring/hearth/internal/observability"
)

// ErrorHandler logs job failures and records jobs abandoned after their final
// attempt, so a stuck ingest queue shows up in the outcome counters and not
// only in the logs.
type ErrorHandler struct {
	// Metrics may be nil (metrics disabled).
	Metrics observability.IngestMetrics
}

// HandleError is called when a job returns an error.
func (h *ErrorHandler) HandleError(ctx context.Context, job *rivertype.JobRow, err error) *river.ErrorHandlerResult {
	if job.Attempt >= job.MaxAttempts {
		slog.Error("job abandoned after final attempt",
			"job_kind", job.Kind,
			"job_id", job.ID,
			"attempt", job.Attempt,
			"error", err,
		)

		if h.Metrics != nil {
			h.Metrics.RecordOutcome(ctx, ingestStatusAbandoned)
		}

		// Return nil to let River discard the exhausted job
		return nil
	}

	slog.Warn("job attempt failed, will retry",
		"job_kind", job.Kind,
		"job_id", job.ID,
		"attempt", job.Attempt,
		"max_attempts", job.MaxAttempts,
		"error", err,
	)

	// Return nil to use default retry behavior
	return nil
}

// HandlePanic is called when a job panics.
func (h *ErrorHandler) HandlePanic(ctx context.Context, job *rivertype.JobRow, panicVal any, trace string) *river.ErrorHandlerResult {
	slog.Error("job panicked",
		"job_kind", job.Kind,
		"job_id", job.ID,
		"attempt", job.Attempt,
		"panic_value", panicVal,
		"stack_trace", trace,
	)

	if job.Attempt >= job.MaxAttempts && h.Metrics != nil {
		h.Metrics.RecordOutcome(ctx, ingestStatusAbandoned)
	}

	// Return nil to use default behavior (mark as errored, will retry)
	return nil
}
