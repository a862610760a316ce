package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famring/hearth/internal/apperrors"
	"github.com/famring/hearth/internal/models"
)

type fakeSummarizer struct {
	gotTexts  []string
	gotPeriod string
	gotCount  int
	headline  string
	err       error
}

func (f *fakeSummarizer) Summarize(_ context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error) {
	f.gotTexts = qaTexts
	f.gotPeriod = periodLabel
	f.gotCount = answerCount

	return f.headline, f.err
}

func TestSummaryService_FamilySummary(t *testing.T) {
	ctx := context.Background()
	familyID := uuid.New()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("unknown period is a validation error", func(t *testing.T) {
		svc := NewSummaryService(&fakeStore{}, &fakeSummarizer{}, nil)

		_, err := svc.FamilySummary(ctx, familyID, "quarterly")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("weekly window is seven trailing days", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewSummaryService(store, &fakeSummarizer{headline: "a good week"}, nil)
		svc.now = func() time.Time { return now }

		headline, err := svc.FamilySummary(ctx, familyID, PeriodWeekly)
		require.NoError(t, err)
		assert.Equal(t, "a good week", headline)

		assert.Equal(t, now, store.inRangeEnd)
		assert.Equal(t, now.AddDate(0, 0, -7), store.inRangeStart)
	})

	t.Run("monthly window is thirty trailing days", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewSummaryService(store, &fakeSummarizer{headline: "a busy month"}, nil)
		svc.now = func() time.Time { return now }

		_, err := svc.FamilySummary(ctx, familyID, PeriodMonthly)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -30), store.inRangeStart)
	})

	t.Run("documents are rendered for the summarizer", func(t *testing.T) {
		docs := []models.QADocument{
			{RoleLabel: "mom", Question: "q1", Answer: "a1", AnsweredAt: now.AddDate(0, 0, -2)},
			{RoleLabel: "dad", Question: "q2", Answer: "a2", AnsweredAt: now.AddDate(0, 0, -1)},
		}

		store := &fakeStore{inRange: docs}
		summarizer := &fakeSummarizer{headline: "h"}
		svc := NewSummaryService(store, summarizer, nil)
		svc.now = func() time.Time { return now }

		_, err := svc.FamilySummary(ctx, familyID, PeriodWeekly)
		require.NoError(t, err)

		require.Len(t, summarizer.gotTexts, 2)
		assert.Equal(t, docs[0].EmbeddingText(), summarizer.gotTexts[0])
		assert.Equal(t, PeriodWeekly, summarizer.gotPeriod)
		assert.Equal(t, 2, summarizer.gotCount)
	})

	t.Run("empty period still summarizes", func(t *testing.T) {
		summarizer := &fakeSummarizer{headline: "a quiet week"}
		svc := NewSummaryService(&fakeStore{}, summarizer, nil)
		svc.now = func() time.Time { return now }

		headline, err := svc.FamilySummary(ctx, familyID, PeriodWeekly)
		require.NoError(t, err)
		assert.Equal(t, "a quiet week", headline)
		assert.Equal(t, 0, summarizer.gotCount)
	})
}
