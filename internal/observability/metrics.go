package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GenerationMetrics records question generation metrics (orchestrator).
// Methods accept ctx for future exemplar support.
type GenerationMetrics interface {
	RecordAttempt(ctx context.Context)
	RecordDuplicateRejected(ctx context.Context)
	RecordOutcome(ctx context.Context, outcome string)
	RecordDuration(ctx context.Context, duration time.Duration, outcome string)
	RecordRAGCount(ctx context.Context, count int64)
}

// generationMetrics implements GenerationMetrics.
type generationMetrics struct {
	attempts   metric.Int64Counter
	duplicates metric.Int64Counter
	outcomes   metric.Int64Counter
	duration   metric.Float64Histogram
	ragCount   metric.Int64Histogram
}

// NewGenerationMetrics creates GenerationMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewGenerationMetrics(meter metric.Meter) (GenerationMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	attempts, err := meter.Int64Counter(
		MetricNameGenerationAttempts,
		metric.WithDescription("Total generation attempts including retries"),
	)
	if err != nil {
		return nil, fmt.Errorf("create generation attempts counter: %w", err)
	}

	duplicates, err := meter.Int64Counter(
		MetricNameGenerationDuplicates,
		metric.WithDescription("Total candidates rejected as near-duplicates"),
	)
	if err != nil {
		return nil, fmt.Errorf("create generation duplicates counter: %w", err)
	}

	outcomes, err := meter.Int64Counter(
		MetricNameGenerationOutcomes,
		metric.WithDescription("Total orchestration outcomes by terminal state"),
	)
	if err != nil {
		return nil, fmt.Errorf("create generation outcomes counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		MetricNameGenerationDuration,
		metric.WithDescription("End-to-end orchestration duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create generation duration histogram: %w", err)
	}

	ragCount, err := meter.Int64Histogram(
		MetricNameRAGDocuments,
		metric.WithDescription("Documents retrieved as context per orchestration"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rag documents histogram: %w", err)
	}

	return &generationMetrics{
		attempts:   attempts,
		duplicates: duplicates,
		outcomes:   outcomes,
		duration:   duration,
		ragCount:   ragCount,
	}, nil
}

func (m *generationMetrics) RecordAttempt(ctx context.Context) {
	m.attempts.Add(ctx, 1)
}

func (m *generationMetrics) RecordDuplicateRejected(ctx context.Context) {
	m.duplicates.Add(ctx, 1)
}

func (m *generationMetrics) RecordOutcome(ctx context.Context, outcome string) {
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOutcome, NormalizeOutcome(outcome)),
	))
}

func (m *generationMetrics) RecordDuration(ctx context.Context, duration time.Duration, outcome string) {
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrOutcome, NormalizeOutcome(outcome)),
	))
}

func (m *generationMetrics) RecordRAGCount(ctx context.Context, count int64) {
	m.ragCount.Record(ctx, count)
}

// SamplerMetrics records assignment sampler metrics.
type SamplerMetrics interface {
	RecordDraws(ctx context.Context, count int64)
	RecordError(ctx context.Context, reason string)
}

// samplerMetrics implements SamplerMetrics.
type samplerMetrics struct {
	draws  metric.Int64Counter
	errors metric.Int64Counter
}

// NewSamplerMetrics creates SamplerMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewSamplerMetrics(meter metric.Meter) (SamplerMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	draws, err := meter.Int64Counter(
		MetricNameSamplerDraws,
		metric.WithDescription("Total members drawn by the assignment sampler"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sampler draws counter: %w", err)
	}

	errors, err := meter.Int64Counter(
		MetricNameSamplerErrors,
		metric.WithDescription("Total sampler argument validation failures"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sampler errors counter: %w", err)
	}

	return &samplerMetrics{draws: draws, errors: errors}, nil
}

func (m *samplerMetrics) RecordDraws(ctx context.Context, count int64) {
	m.draws.Add(ctx, count)
}

func (m *samplerMetrics) RecordError(ctx context.Context, reason string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrReason, reason),
	))
}

// IngestMetrics records QA ingest job outcomes.
type IngestMetrics interface {
	RecordOutcome(ctx context.Context, status string)
}

// ingestMetrics implements IngestMetrics.
type ingestMetrics struct {
	outcomes metric.Int64Counter
}

// NewIngestMetrics creates IngestMetrics. Returns (nil, nil) when meter is nil (metrics disabled).
func NewIngestMetrics(meter metric.Meter) (IngestMetrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	outcomes, err := meter.Int64Counter(
		MetricNameIngestOutcomes,
		metric.WithDescription("Total ingest job outcomes by terminal status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create ingest outcomes counter: %w", err)
	}

	return &ingestMetrics{outcomes: outcomes}, nil
}

func (m *ingestMetrics) RecordOutcome(ctx context.Context, status string) {
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStatus, status),
	))
}
