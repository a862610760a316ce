package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/famring/hearth/internal/jobs"
	"github.com/famring/hearth/internal/models"
)

// IngestService enqueues answered questions for background embedding and
// storage. The worker process drains the queue; callers on the request path
// only pay for the insert.
type IngestService struct {
	inserter jobs.JobInserter
	logger   *slog.Logger
}

// NewIngestService creates an IngestService. logger may be nil (slog default).
func NewIngestService(inserter jobs.JobInserter, logger *slog.Logger) *IngestService {
	if logger == nil {
		logger = slog.Default()
	}

	return &IngestService{inserter: inserter, logger: logger}
}

// EnqueueAnswer queues one answered question for ingest. Invalid documents are
// rejected here (ValidationError) rather than poisoning the queue; job
// uniqueness by payload makes redelivery of the same answer event safe.
func (s *IngestService) EnqueueAnswer(ctx context.Context, doc models.QADocument) error {
	args := jobs.QAIngestArgs{
		FamilyID:   doc.FamilyID,
		MemberID:   doc.MemberID,
		RoleLabel:  doc.RoleLabel,
		Question:   doc.Question,
		Answer:     doc.Answer,
		AnsweredAt: doc.AnsweredAt,
	}

	if err := args.Validate(); err != nil {
		return err
	}

	if err := s.inserter.InsertQAIngestJob(ctx, args); err != nil {
		return fmt.Errorf("enqueue qa ingest job: %w", err)
	}

	s.logger.Info("qa ingest enqueued",
		"family_id", doc.FamilyID,
		"member_id", doc.MemberID,
		"answer_length", len(doc.Answer),
	)

	return nil
}
