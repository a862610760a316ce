package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
)

type recordingMetrics struct {
	statuses []string
}

func (m *recordingMetrics) RecordOutcome(_ context.Context, status string) {
	m.statuses = append(m.statuses, status)
}

func TestErrorHandler_HandleError(t *testing.T) {
	ctx := context.Background()
	workErr := errors.New("connection reset")

	t.Run("retryable attempt records nothing", func(t *testing.T) {
		metrics := &recordingMetrics{}
		handler := &ErrorHandler{Metrics: metrics}

		row := &rivertype.JobRow{ID: 7, Kind: qaIngestKind, Attempt: 1, MaxAttempts: 3}

		assert.Nil(t, handler.HandleError(ctx, row, workErr))
		assert.Empty(t, metrics.statuses)
	})

	t.Run("final attempt records abandonment", func(t *testing.T) {
		metrics := &recordingMetrics{}
		handler := &ErrorHandler{Metrics: metrics}

		row := &rivertype.JobRow{ID: 7, Kind: qaIngestKind, Attempt: 3, MaxAttempts: 3}

		assert.Nil(t, handler.HandleError(ctx, row, workErr))
		assert.Equal(t, []string{ingestStatusAbandoned}, metrics.statuses)
	})

	t.Run("nil metrics is safe", func(t *testing.T) {
		handler := &ErrorHandler{}

		row := &rivertype.JobRow{ID: 7, Kind: qaIngestKind, Attempt: 3, MaxAttempts: 3}

		assert.Nil(t, handler.HandleError(ctx, row, workErr))
	})
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	ctx := context.Background()

	t.Run("mid-run panic records nothing", func(t *testing.T) {
		metrics := &recordingMetrics{}
		handler := &ErrorHandler{Metrics: metrics}

		row := &rivertype.JobRow{ID: 9, Kind: qaIngestKind, Attempt: 1, MaxAttempts: 3}

		assert.Nil(t, handler.HandlePanic(ctx, row, "nil deref", "stack"))
		assert.Empty(t, metrics.statuses)
	})

	t.Run("final-attempt panic records abandonment", func(t *testing.T) {
		metrics := &recordingMetrics{}
		handler := &ErrorHandler{Metrics: metrics}

		row := &rivertype.JobRow{ID: 9, Kind: qaIngestKind, Attempt: 3, MaxAttempts: 3}

		assert.Nil(t, handler.HandlePanic(ctx, row, "nil deref", "stack"))
		assert.Equal(t, []string{ingestStatusAbandoned}, metrics.statuses)
	})
}
