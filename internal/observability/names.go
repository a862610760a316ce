// Package observability provides OpenTelemetry metrics and slog setup for the AI core.
package observability

// Metric names (OpenTelemetry).
const (
	MetricNameGenerationAttempts   = "hearth_generation_attempts_total"
	MetricNameGenerationDuplicates = "hearth_generation_duplicates_total"
	MetricNameGenerationOutcomes   = "hearth_generation_outcomes_total"
	MetricNameGenerationDuration   = "hearth_generation_duration_seconds"
	MetricNameRAGDocuments         = "hearth_rag_documents_retrieved"
	MetricNameSamplerDraws         = "hearth_sampler_draws_total"
	MetricNameSamplerErrors        = "hearth_sampler_errors_total"
	MetricNameIngestOutcomes       = "hearth_ingest_outcomes_total"
)

// Attribute keys.
const (
	AttrOutcome = "outcome"
	AttrReason  = "reason"
	AttrStatus  = "status"
)

// Generation outcomes for hearth_generation_outcomes_total (bounded cardinality).
const (
	OutcomeAccepted  = "accepted"
	OutcomeExhausted = "exhausted"
)

// AllowedGenerationOutcomes for hearth_generation_outcomes_total.
var AllowedGenerationOutcomes = map[string]bool{
	OutcomeAccepted:  true,
	OutcomeExhausted: true,
}

// NormalizeOutcome returns outcome if allowed, otherwise "unknown".
func NormalizeOutcome(outcome string) string {
	if AllowedGenerationOutcomes[outcome] {
		return outcome
	}

	return "unknown"
}
