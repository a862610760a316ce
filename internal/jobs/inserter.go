package jobs

import (
	"context"
)

// JobInserter is an interface for inserting jobs into the queue.
// This allows callers to enqueue ingest work without knowing about River directly.
type JobInserter interface {
	// InsertQAIngestJob enqueues an ingest job for one answered question.
	InsertQAIngestJob(ctx context.Context, args QAIngestArgs) error
}
