package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/famring/hearth/internal/apperrors"
	"github.com/famring/hearth/internal/vectorstore"
)

// Summary periods.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

var periodDays = map[string]int{
	PeriodWeekly:  7,
	PeriodMonthly: 30,
}

// SummaryGenerator turns a period's QA texts into a single headline.
type SummaryGenerator interface {
	Summarize(ctx context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error)
}

// SummaryService produces weekly/monthly family activity headlines.
type SummaryService struct {
	store     vectorstore.Store
	generator SummaryGenerator
	logger    *slog.Logger
	now       func() time.Time
}

// NewSummaryService creates a SummaryService. logger may be nil (slog default).
func NewSummaryService(store vectorstore.Store, generator SummaryGenerator, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SummaryService{store: store, generator: generator, logger: logger, now: time.Now}
}

// FamilySummary summarizes the family's answers over the trailing period
// ("weekly" = 7 days, "monthly" = 30). An empty period still summarizes;
// the generator is told there was no activity.
func (s *SummaryService) FamilySummary(ctx context.Context, familyID uuid.UUID, period string) (string, error) {
	days, ok := periodDays[period]
	if !ok {
		return "", apperrors.NewValidationError("period",
			fmt.Sprintf("period must be %q or %q, got %q", PeriodWeekly, PeriodMonthly, period))
	}

	end := s.now()
	start := end.AddDate(0, 0, -days)

	docs, err := s.store.ByFamilyInRange(ctx, familyID, start, end)
	if err != nil {
		return "", fmt.Errorf("load period documents: %w", err)
	}

	qaTexts := make([]string, 0, len(docs))
	for _, doc := range docs {
		qaTexts = append(qaTexts, doc.EmbeddingText())
	}

	headline, err := s.generator.Summarize(ctx, qaTexts, period, len(docs))
	if err != nil {
		return "", err
	}

	s.logger.Info("family summary generated",
		"family_id", familyID,
		"period", period,
		"answer_count", len(docs),
	)

	return headline, nil
}
