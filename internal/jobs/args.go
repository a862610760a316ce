// Package jobs provides River job workers for async processing tasks.
package jobs

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/famring/hearth/internal/apperrors"
)

const (
	qaIngestKind = "qa_ingest"

	// IngestQueueName is the River queue used for QA ingest jobs.
	IngestQueueName = "ingest"
)

// QAIngestArgs is the job payload for embedding and storing one answered
// question off the hot path. Uniqueness is by args so duplicate delivery of
// the same answer event does not create duplicate jobs.
type QAIngestArgs struct {
	FamilyID   uuid.UUID `json:"family_id"`
	MemberID   uuid.UUID `json:"member_id"`
	RoleLabel  string    `json:"role_label"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Kind returns the job type identifier for River.
func (QAIngestArgs) Kind() string { return qaIngestKind }

// Validate reports whether the payload can ever be ingested. Both the
// enqueuing side and the worker call it: a payload that fails here is
// rejected up front rather than retried.
func (a QAIngestArgs) Validate() error {
	switch {
	case a.FamilyID == uuid.Nil:
		return apperrors.NewValidationError("family_id", "family_id is required")
	case a.MemberID == uuid.Nil:
		return apperrors.NewValidationError("member_id", "member_id is required")
	case strings.TrimSpace(a.Question) == "":
		return apperrors.NewValidationError("question", "question is required")
	case strings.TrimSpace(a.Answer) == "":
		return apperrors.NewValidationError("answer", "answer is required")
	case a.AnsweredAt.IsZero():
		return apperrors.NewValidationError("answered_at", "answered_at is required")
	}

	return nil
}

var _ river.JobArgs = QAIngestArgs{}
