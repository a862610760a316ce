package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/famring/hearth/internal/models"
)

// AnswerAnalyzer grades answers for sentiment, emotion, relevance and toxicity.
type AnswerAnalyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnswerAnalysis, error)
}

// AnswerService exposes answer analysis.
type AnswerService struct {
	analyzer AnswerAnalyzer
	logger   *slog.Logger
}

// NewAnswerService creates an AnswerService. logger may be nil (slog default).
func NewAnswerService(analyzer AnswerAnalyzer, logger *slog.Logger) *AnswerService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnswerService{analyzer: analyzer, logger: logger}
}

// Analyze grades one answer. A backend failure is a hard failure; an
// undecodable model response is returned with ParseOK false instead.
func (s *AnswerService) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnswerAnalysis, error) {
	analysis, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return models.AnswerAnalysis{}, fmt.Errorf("answer analysis: %w", err)
	}

	if !analysis.ParseOK {
		s.logger.Warn("answer analysis response did not decode", "version", analysis.Version)
	}

	return analysis, nil
}
