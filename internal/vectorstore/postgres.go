package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/famring/hearth/internal/embedding"
	"github.com/famring/hearth/internal/models"
)

// Postgres implements Store on pgvector.
//
// Expected table (halfvec stores 2 bytes per dimension):
//
//	CREATE TABLE qa_documents (
//	    id          uuid PRIMARY KEY,
//	    family_id   uuid NOT NULL,
//	    member_id   uuid NOT NULL,
//	    role_label  text NOT NULL,
//	    question    text NOT NULL,
//	    answer      text NOT NULL,
//	    answered_at timestamptz NOT NULL,
//	    model       text NOT NULL,
//	    embedding   halfvec(1536) NOT NULL,
//	    created_at  timestamptz NOT NULL
//	);
type Postgres struct {
	db       *pgxpool.Pool
	embedder embedding.Client
	model    string
}

// NewPostgres creates a pgvector-backed store. model tags stored rows so
// embeddings from different models are never compared against each other.
func NewPostgres(db *pgxpool.Pool, embedder embedding.Client, model string) *Postgres {
	return &Postgres{db: db, embedder: embedder, model: model}
}

var _ Store = (*Postgres)(nil)

// Store embeds the document's canonical text and inserts a new row.
// Duplicate documents produce duplicate rows; retrieval tolerates them.
func (s *Postgres) Store(ctx context.Context, doc models.QADocument) error {
	vec, err := s.embedder.CreateEmbedding(ctx, doc.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed document: %w", err)
	}

	now := time.Now()

	_, err = s.db.Exec(ctx, `
		INSERT INTO qa_documents (id, family_id, member_id, role_label, question, answer, answered_at, model, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.New(), doc.FamilyID, doc.MemberID, doc.RoleLabel,
		doc.Question, doc.Answer, doc.AnsweredAt, s.model,
		pgvector.NewHalfVector(vec), now,
	)
	if err != nil {
		return fmt.Errorf("qa document insert: %w", err)
	}

	return nil
}

// Search returns the topK nearest documents to the query document within the
// scope, most similar first. Uses cosine distance (<=>).
func (s *Postgres) Search(ctx context.Context, query models.QADocument, scope models.Scope, topK int) ([]models.QADocument, error) {
	if topK <= 0 {
		return nil, nil
	}

	vec, err := s.embedder.CreateEmbedding(ctx, query.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	queryVec := pgvector.NewHalfVector(vec)

	var rows pgx.Rows

	if scope.MemberID == nil {
		rows, err = s.db.Query(ctx, `
			SELECT family_id, member_id, role_label, question, answer, answered_at
			FROM qa_documents
			WHERE model = $2 AND family_id = $3
			ORDER BY embedding <=> $1
			LIMIT $4`, queryVec, s.model, scope.FamilyID, topK)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT family_id, member_id, role_label, question, answer, answered_at
			FROM qa_documents
			WHERE model = $2 AND family_id = $3 AND member_id = $4
			ORDER BY embedding <=> $1
			LIMIT $5`, queryVec, s.model, scope.FamilyID, *scope.MemberID, topK)
	}

	if err != nil {
		return nil, fmt.Errorf("nearest qa documents: %w", err)
	}

	return scanDocuments(rows)
}

// RecentByMember returns the member's newest documents, answered_at descending.
func (s *Postgres) RecentByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]models.QADocument, error) {
	rows, err := s.db.Query(ctx, `
		SELECT family_id, member_id, role_label, question, answer, answered_at
		FROM qa_documents
		WHERE member_id = $1
		ORDER BY answered_at DESC
		LIMIT $2`, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent by member: %w", err)
	}

	return scanDocuments(rows)
}

// RecentByFamily returns up to perMember newest documents per family member.
func (s *Postgres) RecentByFamily(ctx context.Context, familyID uuid.UUID, perMember int) ([]models.QADocument, error) {
	rows, err := s.db.Query(ctx, `
		SELECT family_id, member_id, role_label, question, answer, answered_at
		FROM (
			SELECT family_id, member_id, role_label, question, answer, answered_at,
			       row_number() OVER (PARTITION BY member_id ORDER BY answered_at DESC) AS rn
			FROM qa_documents
			WHERE family_id = $1
		) ranked
		WHERE rn <= $2
		ORDER BY member_id, answered_at DESC`, familyID, perMember)
	if err != nil {
		return nil, fmt.Errorf("recent by family: %w", err)
	}

	return scanDocuments(rows)
}

// ByFamilyInRange returns the family's documents answered within [start, end], oldest first.
func (s *Postgres) ByFamilyInRange(ctx context.Context, familyID uuid.UUID, start, end time.Time) ([]models.QADocument, error) {
	rows, err := s.db.Query(ctx, `
		SELECT family_id, member_id, role_label, question, answer, answered_at
		FROM qa_documents
		WHERE family_id = $1 AND answered_at BETWEEN $2 AND $3
		ORDER BY answered_at`, familyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("qa documents in range: %w", err)
	}

	return scanDocuments(rows)
}

// DeleteByMember removes all of a member's documents and returns the count removed.
func (s *Postgres) DeleteByMember(ctx context.Context, memberID uuid.UUID) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM qa_documents WHERE member_id = $1`, memberID)
	if err != nil {
		return 0, fmt.Errorf("delete by member: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func scanDocuments(rows pgx.Rows) ([]models.QADocument, error) {
	defer rows.Close()

	var docs []models.QADocument

	for rows.Next() {
		var doc models.QADocument
		if err := rows.Scan(&doc.FamilyID, &doc.MemberID, &doc.RoleLabel, &doc.Question, &doc.Answer, &doc.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan qa document: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating qa documents: %w", err)
	}

	return docs, nil
}
