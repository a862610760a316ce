// Package vectorstore persists (vector, text, metadata) tuples for answered
// questions and serves scoped nearest-neighbor retrieval.
package vectorstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/famring/hearth/internal/models"
)

// Store is the vector store capability consumed by the generation core.
//
// Store may be called again for an identical document; duplicates in storage
// are tolerated and retrieval does not rely on storage-level uniqueness.
// Search returns at most topK documents, most similar first; an empty result
// means no prior history and is not an error.
type Store interface {
	Store(ctx context.Context, doc models.QADocument) error
	Search(ctx context.Context, query models.QADocument, scope models.Scope, topK int) ([]models.QADocument, error)

	// RecentByMember returns the member's newest documents, answered_at descending.
	RecentByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]models.QADocument, error)
	// RecentByFamily returns up to perMember newest documents for each family member.
	RecentByFamily(ctx context.Context, familyID uuid.UUID, perMember int) ([]models.QADocument, error)
	// ByFamilyInRange returns the family's documents answered within [start, end],
	// oldest first. Used by period summaries.
	ByFamilyInRange(ctx context.Context, familyID uuid.UUID, start, end time.Time) ([]models.QADocument, error)
	// DeleteByMember removes all of a member's documents and returns the count removed.
	DeleteByMember(ctx context.Context, memberID uuid.UUID) (int, error)
}
