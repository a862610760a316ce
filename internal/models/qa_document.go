// Package models contains the domain types shared across the AI core.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QADocument is one answered question belonging to a family member.
// Immutable once created; the vector store keeps its own copy when storing.
type QADocument struct {
	FamilyID   uuid.UUID
	MemberID   uuid.UUID
	RoleLabel  string // e.g. "eldest daughter", "dad"
	Question   string
	Answer     string
	AnsweredAt time.Time
}

// EmbeddingText returns the canonical text that is embedded and stored for this
// document. Retrieval, storage and summaries all use this same rendering so
// distances stay comparable.
func (d QADocument) EmbeddingText() string {
	return fmt.Sprintf("On %s, %s was asked: %s\nAnswer: %s",
		d.AnsweredAt.Format("2006-01-02"), d.RoleLabel, d.Question, d.Answer)
}

// IsRecent reports whether the document was answered within the trailing window.
func (d QADocument) IsRecent(days int) bool {
	return time.Since(d.AnsweredAt) <= time.Duration(days)*24*time.Hour
}

// Scope restricts which prior documents are eligible for retrieval.
// Member-scoped when MemberID is set, family-scoped otherwise.
type Scope struct {
	FamilyID uuid.UUID
	MemberID *uuid.UUID
}
