package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/time/rate"

	"github.com/famring/hearth/internal/embedding"
	"github.com/famring/hearth/internal/models"
)

// ReembedStats holds statistics from a re-embedding pass.
type ReembedStats struct {
	Reembedded int
	Errors     int
}

// ReembedStale re-embeds every stored document whose embedding was produced by
// a different model than the one currently configured, so retrieval never
// compares vectors across models. Rows that fail are skipped and counted, not
// fatal; the pass can be re-run.
func ReembedStale(ctx context.Context, db *pgxpool.Pool, embedder embedding.Client, model string, limiter *rate.Limiter) (*ReembedStats, error) {
	rows, err := db.Query(ctx, `
		SELECT id, role_label, question, answer, answered_at
		FROM qa_documents
		WHERE model <> $1`, model)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale documents: %w", err)
	}

	type staleRow struct {
		id  uuid.UUID
		doc models.QADocument
	}

	var stale []staleRow

	for rows.Next() {
		var row staleRow
		if err := rows.Scan(&row.id, &row.doc.RoleLabel, &row.doc.Question, &row.doc.Answer, &row.doc.AnsweredAt); err != nil {
			rows.Close()

			return nil, fmt.Errorf("failed to scan stale document: %w", err)
		}

		stale = append(stale, row)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stale documents: %w", err)
	}

	stats := &ReembedStats{}

	for _, row := range stale {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return stats, err
			}
		}

		vec, err := embedder.CreateEmbedding(ctx, row.doc.EmbeddingText())
		if err != nil {
			slog.Error("failed to re-embed document", "document_id", row.id, "error", err)
			stats.Errors++

			continue
		}

		_, err = db.Exec(ctx, `
			UPDATE qa_documents SET embedding = $1, model = $2
			WHERE id = $3`,
			pgvector.NewHalfVector(vec), model, row.id)
		if err != nil {
			slog.Error("failed to update re-embedded document", "document_id", row.id, "error", err)
			stats.Errors++

			continue
		}

		stats.Reembedded++
	}

	return stats, nil
}
