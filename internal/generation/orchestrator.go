package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/famring/hearth/internal/embedding"
	"github.com/famring/hearth/internal/models"
	"github.com/famring/hearth/internal/observability"
	"github.com/famring/hearth/internal/vectorstore"
)

// Orchestrator runs one generation request through
// RETRIEVING → PROMPTING → DEDUP_CHECK → {ACCEPTED, RETRYING, EXHAUSTED}.
// It holds no state across calls; distinct requests may run concurrently.
type Orchestrator struct {
	store    vectorstore.Store
	backend  Backend
	embedder embedding.Client

	topK            int
	minAnswers      int
	threshold       float64
	maxRegeneration int

	metrics observability.GenerationMetrics
	logger  *slog.Logger
}

// Params configures an Orchestrator. Metrics may be nil (metrics disabled);
// Logger may be nil (slog default).
type Params struct {
	Store    vectorstore.Store
	Backend  Backend
	Embedder embedding.Client

	// TopK is the retrieval breadth for member-scoped requests.
	// Family-scoped requests retrieve twice as much context.
	TopK int

	// MinAnswers is the context size below which retrieval counts as sparse.
	// Sparse context degrades quality, never correctness: generation proceeds.
	MinAnswers int

	// SimilarityThreshold is the cosine similarity at or above which a
	// candidate is rejected as a duplicate of a session-local candidate.
	SimilarityThreshold float64

	// MaxRegeneration is the retry budget after the first attempt.
	MaxRegeneration int

	Metrics observability.GenerationMetrics
	Logger  *slog.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(p Params) *Orchestrator {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		store:           p.Store,
		backend:         p.Backend,
		embedder:        p.Embedder,
		topK:            p.TopK,
		minAnswers:      p.MinAnswers,
		threshold:       p.SimilarityThreshold,
		maxRegeneration: p.MaxRegeneration,
		metrics:         p.Metrics,
		logger:          logger,
	}
}

// Generate produces one follow-up question for the answered base document.
// Retrieval is member-scoped when scope.MemberID is set, family-scoped otherwise.
//
// Backend and embedding errors are hard failures. Exhausting the retry budget
// is not: the last candidate is returned with Metadata.SimilarityWarning set.
func (o *Orchestrator) Generate(ctx context.Context, base models.QADocument, scope models.Scope) (models.GenerationResult, error) {
	start := time.Now()

	// RETRIEVING
	topK := o.topK
	if scope.MemberID == nil {
		// Family-wide generation draws on more voices.
		topK *= 2
	}

	ragContext, err := o.store.Search(ctx, base, scope, topK)
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("retrieve context: %w", err)
	}

	if o.metrics != nil {
		o.metrics.RecordRAGCount(ctx, int64(len(ragContext)))
	}

	if len(ragContext) < o.minAnswers {
		o.logger.Debug("sparse retrieval context, proceeding",
			"family_id", base.FamilyID,
			"rag_count", len(ragContext),
			"min_answers", o.minAnswers,
		)
	}

	// Seed the session with the base question so the first attempt is checked
	// against something: a follow-up must not repeat the question just answered.
	baseVec, err := o.embedder.CreateEmbedding(ctx, base.Question)
	if err != nil {
		return models.GenerationResult{}, fmt.Errorf("embed base question: %w", err)
	}

	session := NewDeduplicator(o.threshold)
	session.Add(base.Question, baseVec)

	prompt := BuildPrompt(base, ragContext)

	var (
		candidate Candidate
		warning   bool
		retries   int
	)

	// PROMPTING / DEDUP_CHECK / RETRYING, bounded by the retry budget.
	for attempt := 0; attempt <= o.maxRegeneration; attempt++ {
		if o.metrics != nil {
			o.metrics.RecordAttempt(ctx)
		}

		candidate, err = o.backend.GenerateQuestion(ctx, prompt)
		if err != nil {
			return models.GenerationResult{}, fmt.Errorf("generate candidate (attempt %d): %w", attempt+1, err)
		}

		vec, err := o.embedder.CreateEmbedding(ctx, candidate.Question)
		if err != nil {
			return models.GenerationResult{}, fmt.Errorf("embed candidate (attempt %d): %w", attempt+1, err)
		}

		maxSim, duplicate := session.Check(vec)
		session.Add(candidate.Question, vec)

		if !duplicate {
			// ACCEPTED
			retries = attempt
			o.logger.Info("question accepted",
				"family_id", base.FamilyID,
				"attempt", attempt+1,
				"max_similarity", maxSim,
				"rag_count", len(ragContext),
			)

			break
		}

		if o.metrics != nil {
			o.metrics.RecordDuplicateRejected(ctx)
		}

		if attempt == o.maxRegeneration {
			// EXHAUSTED: degrade, don't block. The last candidate ships flagged.
			retries = attempt
			warning = true
			o.logger.Warn("retry budget exhausted, returning last candidate",
				"family_id", base.FamilyID,
				"max_similarity", maxSim,
				"regeneration_count", retries,
			)

			break
		}

		o.logger.Warn("duplicate candidate rejected, regenerating",
			"family_id", base.FamilyID,
			"attempt", attempt+1,
			"max_similarity", maxSim,
		)
	}

	outcome := observability.OutcomeAccepted
	if warning {
		outcome = observability.OutcomeExhausted
	}

	if o.metrics != nil {
		o.metrics.RecordOutcome(ctx, outcome)
		o.metrics.RecordDuration(ctx, time.Since(start), outcome)
	}

	return models.GenerationResult{
		Question: candidate.Question,
		Level:    candidate.Level,
		Metadata: models.GenerationMetadata{
			RAGCount:          len(ragContext),
			RegenerationCount: retries,
			SimilarityWarning: warning,
			Model:             candidate.Model,
		},
	}, nil
}
