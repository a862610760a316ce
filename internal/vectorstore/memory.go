package vectorstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/famring/hearth/internal/embedding"
	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/pkg/embeddings"
)

// Memory is an in-memory Store for tests and local runs.
// Brute-force cosine scan; fine for the corpus sizes tests use.
type Memory struct {
	embedder embedding.Client

	mu   sync.RWMutex
	rows []memoryRow
}

type memoryRow struct {
	doc models.QADocument
	vec []float32
}

// NewMemory creates an in-memory store backed by the given embedder.
func NewMemory(embedder embedding.Client) *Memory {
	return &Memory{embedder: embedder}
}

var _ Store = (*Memory)(nil)

// Len returns the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.rows)
}

// Store embeds and keeps a copy of the document.
func (m *Memory) Store(ctx context.Context, doc models.QADocument) error {
	vec, err := m.embedder.CreateEmbedding(ctx, doc.EmbeddingText())
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, memoryRow{doc: doc, vec: vec})

	return nil
}

// Search returns the topK nearest documents within scope, most similar first.
func (m *Memory) Search(ctx context.Context, query models.QADocument, scope models.Scope, topK int) ([]models.QADocument, error) {
	if topK <= 0 {
		return nil, nil
	}

	queryVec, err := m.embedder.CreateEmbedding(ctx, query.EmbeddingText())
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type scored struct {
		doc   models.QADocument
		score float64
	}

	var matches []scored

	for _, row := range m.rows {
		if row.doc.FamilyID != scope.FamilyID {
			continue
		}
		if scope.MemberID != nil && row.doc.MemberID != *scope.MemberID {
			continue
		}

		matches = append(matches, scored{doc: row.doc, score: embeddings.Cosine(queryVec, row.vec)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	docs := make([]models.QADocument, 0, len(matches))
	for _, s := range matches {
		docs = append(docs, s.doc)
	}

	return docs, nil
}

// RecentByMember returns the member's newest documents, answered_at descending.
func (m *Memory) RecentByMember(_ context.Context, memberID uuid.UUID, limit int) ([]models.QADocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []models.QADocument

	for _, row := range m.rows {
		if row.doc.MemberID == memberID {
			docs = append(docs, row.doc)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].AnsweredAt.After(docs[j].AnsweredAt)
	})

	if len(docs) > limit {
		docs = docs[:limit]
	}

	return docs, nil
}

// RecentByFamily returns up to perMember newest documents per family member.
func (m *Memory) RecentByFamily(_ context.Context, familyID uuid.UUID, perMember int) ([]models.QADocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byMember := make(map[uuid.UUID][]models.QADocument)

	for _, row := range m.rows {
		if row.doc.FamilyID == familyID {
			byMember[row.doc.MemberID] = append(byMember[row.doc.MemberID], row.doc)
		}
	}

	var docs []models.QADocument

	for _, memberDocs := range byMember {
		sort.SliceStable(memberDocs, func(i, j int) bool {
			return memberDocs[i].AnsweredAt.After(memberDocs[j].AnsweredAt)
		})

		if len(memberDocs) > perMember {
			memberDocs = memberDocs[:perMember]
		}

		docs = append(docs, memberDocs...)
	}

	return docs, nil
}

// ByFamilyInRange returns the family's documents answered within [start, end], oldest first.
func (m *Memory) ByFamilyInRange(_ context.Context, familyID uuid.UUID, start, end time.Time) ([]models.QADocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []models.QADocument

	for _, row := range m.rows {
		doc := row.doc
		if doc.FamilyID != familyID {
			continue
		}
		if doc.AnsweredAt.Before(start) || doc.AnsweredAt.After(end) {
			continue
		}

		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].AnsweredAt.Before(docs[j].AnsweredAt)
	})

	return docs, nil
}

// DeleteByMember removes all of a member's documents and returns the count removed.
func (m *Memory) DeleteByMember(_ context.Context, memberID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rows[:0]
	deleted := 0

	for _, row := range m.rows {
		if row.doc.MemberID == memberID {
			deleted++
			continue
		}

		kept = append(kept, row)
	}

	m.rows = kept

	return deleted, nil
}
