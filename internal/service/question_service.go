package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/vectorstore"
)

// QuestionGenerator is the orchestration capability the service delegates to.
type QuestionGenerator interface {
	Generate(ctx context.Context, base models.QADocument, scope models.Scope) (models.GenerationResult, error)
}

// QuestionService exposes the two generation operations: a personal follow-up
// drawn from one member's history, and a family question drawn from everyone's.
type QuestionService struct {
	generator QuestionGenerator
	store     vectorstore.Store
	logger    *slog.Logger
}

// NewQuestionService creates a QuestionService. logger may be nil (slog default).
func NewQuestionService(generator QuestionGenerator, store vectorstore.Store, logger *slog.Logger) *QuestionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &QuestionService{generator: generator, store: store, logger: logger}
}

// GeneratePersonal produces a follow-up scoped to the answering member's own
// history, then stores the base document so future retrievals can see it.
// A store failure after generation is a hard failure: the answer would
// otherwise silently vanish from all future context.
func (s *QuestionService) GeneratePersonal(ctx context.Context, base models.QADocument) (models.GenerationResult, error) {
	memberID := base.MemberID
	scope := models.Scope{FamilyID: base.FamilyID, MemberID: &memberID}

	result, err := s.generator.Generate(ctx, base, scope)
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("personal question: %w", err)
	}

	if err := s.store.Store(ctx, base); err != nil {
		return models.GenerationResult{}, fmt.Errorf("store base document: %w", err)
	}

	s.logger.Info("personal question generated",
		"family_id", base.FamilyID,
		"member_id", base.MemberID,
		"level", result.Level.Int(),
		"rag_count", result.Metadata.RAGCount,
		"regeneration_count", result.Metadata.RegenerationCount,
		"similarity_warning", result.Metadata.SimilarityWarning,
	)

	return result, nil
}

// GenerateFamily produces a question drawn from the whole family's history.
func (s *QuestionService) GenerateFamily(ctx context.Context, base models.QADocument) (models.GenerationResult, error) {
	scope := models.Scope{FamilyID: base.FamilyID}

	result, err := s.generator.Generate(ctx, base, scope)
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("family question: %w", err)
	}

	if err := s.store.Store(ctx, base); err != nil {
		return models.GenerationResult{}, fmt.Errorf("store base document: %w", err)
	}

	s.logger.Info("family question generated",
		"family_id", base.FamilyID,
		"level", result.Level.Int(),
		"rag_count", result.Metadata.RAGCount,
		"regeneration_count", result.Metadata.RegenerationCount,
		"similarity_warning", result.Metadata.SimilarityWarning,
	)

	return result, nil
}
