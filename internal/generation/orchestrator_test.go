package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famring/hearth/internal/models"
)

type stubStore struct {
	searchFunc func(ctx context.Context, query models.QADocument, scope models.Scope, topK int) ([]models.QADocument, error)
}

func (s *stubStore) Store(context.Context, models.QADocument) error { return nil }

func (s *stubStore) Search(ctx context.Context, query models.QADocument, scope models.Scope, topK int) ([]models.QADocument, error) {
	if s.searchFunc != nil {
		return s.searchFunc(ctx, query, scope, topK)
	}

	return nil, nil
}

func (s *stubStore) RecentByMember(context.Context, uuid.UUID, int) ([]models.QADocument, error) {
	return nil, nil
}

func (s *stubStore) RecentByFamily(context.Context, uuid.UUID, int) ([]models.QADocument, error) {
	return nil, nil
}

func (s *stubStore) ByFamilyInRange(context.Context, uuid.UUID, time.Time, time.Time) ([]models.QADocument, error) {
	return nil, nil
}

func (s *stubStore) DeleteByMember(context.Context, uuid.UUID) (int, error) { return 0, nil }

// stubEmbedder maps exact texts to fixed vectors so similarity is controlled
// by the test, not by a real embedding space.
type stubEmbedder struct {
	vecs map[string][]float32
	err  error
}

func (e *stubEmbedder) CreateEmbedding(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}

	vec, ok := e.vecs[text]
	if !ok {
		return nil, errors.New("no stub vector for text: " + text)
	}

	return vec, nil
}

// scriptBackend returns pre-scripted candidates in order.
type scriptBackend struct {
	candidates []Candidate
	err        error
	calls      int
}

func (b *scriptBackend) GenerateQuestion(context.Context, Prompt) (Candidate, error) {
	if b.err != nil {
		return Candidate{}, b.err
	}

	if b.calls >= len(b.candidates) {
		return Candidate{}, errors.New("script exhausted: unexpected extra attempt")
	}

	c := b.candidates[b.calls]
	b.calls++

	return c, nil
}

func baseDoc() models.QADocument {
	return models.QADocument{
		FamilyID:   uuid.New(),
		MemberID:   uuid.New(),
		RoleLabel:  "mom",
		Question:   "base question",
		Answer:     "base answer",
		AnsweredAt: time.Now(),
	}
}

func memberScope(doc models.QADocument) models.Scope {
	memberID := doc.MemberID

	return models.Scope{FamilyID: doc.FamilyID, MemberID: &memberID}
}

func TestOrchestrator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("first attempt accepted", func(t *testing.T) {
		base := baseDoc()
		contextDocs := []models.QADocument{
			{Question: "old q1", Answer: "a1"},
			{Question: "old q2", Answer: "a2"},
			{Question: "old q3", Answer: "a3"},
		}

		backend := &scriptBackend{candidates: []Candidate{
			{Question: "fresh question", Level: models.LevelDeep, Model: "gpt-4.1-nano"},
		}}

		o := NewOrchestrator(Params{
			Store: &stubStore{searchFunc: func(_ context.Context, _ models.QADocument, _ models.Scope, _ int) ([]models.QADocument, error) {
				return contextDocs, nil
			}},
			Backend: backend,
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question":  {1, 0, 0},
				"fresh question": {0, 1, 0},
			}},
			TopK:                5,
			MinAnswers:          3,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     3,
		})

		result, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)

		assert.Equal(t, "fresh question", result.Question)
		assert.Equal(t, models.LevelDeep, result.Level)
		assert.Equal(t, "gpt-4.1-nano", result.Metadata.Model)
		assert.Equal(t, 3, result.Metadata.RAGCount)
		assert.Equal(t, 0, result.Metadata.RegenerationCount)
		assert.False(t, result.Metadata.SimilarityWarning)
		assert.Equal(t, 1, backend.calls)
	})

	t.Run("candidate repeating the base question is rejected", func(t *testing.T) {
		base := baseDoc()

		backend := &scriptBackend{candidates: []Candidate{
			{Question: "echo of base", Level: models.LevelNormal},
			{Question: "fresh question", Level: models.LevelNormal},
		}}

		o := NewOrchestrator(Params{
			Store:   &stubStore{},
			Backend: backend,
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question":  {1, 0, 0},
				"echo of base":   {1, 0, 0}, // identical to the base question
				"fresh question": {0, 1, 0},
			}},
			TopK:                5,
			MinAnswers:          3,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     3,
		})

		result, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)

		assert.Equal(t, "fresh question", result.Question)
		assert.Equal(t, 1, result.Metadata.RegenerationCount)
		assert.False(t, result.Metadata.SimilarityWarning)
		assert.Equal(t, 2, backend.calls)
	})

	t.Run("retry must diverge from rejected candidates too", func(t *testing.T) {
		base := baseDoc()

		backend := &scriptBackend{candidates: []Candidate{
			{Question: "candidate a"},
			{Question: "candidate b"},
			{Question: "fresh question"},
		}}

		// candidate a is ~18 degrees from base (cos 0.95, rejected against base).
		// candidate b is ~36 degrees from base (cos 0.81, clears base) but only
		// ~18 degrees from the rejected candidate a, so it must be rejected too.
		o := NewOrchestrator(Params{
			Store:   &stubStore{},
			Backend: backend,
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question":  {1, 0, 0},
				"candidate a":    {0.95, 0.312, 0},
				"candidate b":    {0.805, 0.593, 0},
				"fresh question": {0, 0, 1},
			}},
			TopK:                5,
			MinAnswers:          3,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     3,
		})

		result, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)
		assert.Equal(t, "fresh question", result.Question)
		assert.Equal(t, 2, result.Metadata.RegenerationCount)
		assert.Equal(t, 3, backend.calls)
	})

	t.Run("exhausted budget returns last candidate with warning", func(t *testing.T) {
		base := baseDoc()

		backend := &scriptBackend{candidates: []Candidate{
			{Question: "dup 1"},
			{Question: "dup 2"},
			{Question: "dup 3"},
			{Question: "dup 4", Level: models.LevelNormal, Model: "gpt-4.1-nano"},
		}}

		sameVec := []float32{1, 0, 0}

		o := NewOrchestrator(Params{
			Store:   &stubStore{},
			Backend: backend,
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question": sameVec,
				"dup 1":         sameVec,
				"dup 2":         sameVec,
				"dup 3":         sameVec,
				"dup 4":         sameVec,
			}},
			TopK:                5,
			MinAnswers:          3,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     3,
		})

		result, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)

		// 1 initial attempt + 3 regenerations, all rejected: the last candidate
		// ships anyway, flagged instead of failing.
		assert.Equal(t, 4, backend.calls)
		assert.Equal(t, "dup 4", result.Question)
		assert.Equal(t, 3, result.Metadata.RegenerationCount)
		assert.True(t, result.Metadata.SimilarityWarning)
	})

	t.Run("zero retry budget means one attempt total", func(t *testing.T) {
		base := baseDoc()

		backend := &scriptBackend{candidates: []Candidate{
			{Question: "dup"},
		}}

		o := NewOrchestrator(Params{
			Store:   &stubStore{},
			Backend: backend,
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question": {1, 0, 0},
				"dup":           {1, 0, 0},
			}},
			TopK:                5,
			MinAnswers:          3,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     0,
		})

		result, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)

		assert.Equal(t, 1, backend.calls)
		assert.Equal(t, 0, result.Metadata.RegenerationCount)
		assert.True(t, result.Metadata.SimilarityWarning)
	})

	t.Run("sparse context still generates", func(t *testing.T) {
		base := baseDoc()

		o := NewOrchestrator(Params{
			Store: &stubStore{}, // no history at all
			Backend: &scriptBackend{candidates: []Candidate{
				{Question: "fresh question"},
			}},
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question":  {1, 0, 0},
				"fresh question": {0, 1, 0},
			}},
			TopK:                5,
			MinAnswers:          3,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     3,
		})

		result, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)

		assert.Equal(t, 0, result.Metadata.RAGCount)
		assert.Equal(t, "fresh question", result.Question)
	})

	t.Run("family scope doubles retrieval breadth", func(t *testing.T) {
		base := baseDoc()

		var gotTopK []int

		store := &stubStore{searchFunc: func(_ context.Context, _ models.QADocument, _ models.Scope, topK int) ([]models.QADocument, error) {
			gotTopK = append(gotTopK, topK)

			return nil, nil
		}}

		embedder := &stubEmbedder{vecs: map[string][]float32{
			"base question":  {1, 0, 0},
			"fresh question": {0, 1, 0},
		}}

		newBackend := func() Backend {
			return &scriptBackend{candidates: []Candidate{{Question: "fresh question"}}}
		}

		o := NewOrchestrator(Params{
			Store: store, Backend: newBackend(), Embedder: embedder,
			TopK: 5, MinAnswers: 3, SimilarityThreshold: 0.9, MaxRegeneration: 3,
		})

		_, err := o.Generate(ctx, base, memberScope(base))
		require.NoError(t, err)

		o = NewOrchestrator(Params{
			Store: store, Backend: newBackend(), Embedder: embedder,
			TopK: 5, MinAnswers: 3, SimilarityThreshold: 0.9, MaxRegeneration: 3,
		})

		_, err = o.Generate(ctx, base, models.Scope{FamilyID: base.FamilyID})
		require.NoError(t, err)

		assert.Equal(t, []int{5, 10}, gotTopK)
	})

	t.Run("retrieval failure is a hard failure", func(t *testing.T) {
		base := baseDoc()

		o := NewOrchestrator(Params{
			Store: &stubStore{searchFunc: func(_ context.Context, _ models.QADocument, _ models.Scope, _ int) ([]models.QADocument, error) {
				return nil, errors.New("pg down")
			}},
			Backend:             &scriptBackend{},
			Embedder:            &stubEmbedder{},
			TopK:                5,
			SimilarityThreshold: 0.9,
		})

		_, err := o.Generate(ctx, base, memberScope(base))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "retrieve context")
	})

	t.Run("backend failure is a hard failure", func(t *testing.T) {
		base := baseDoc()

		o := NewOrchestrator(Params{
			Store:   &stubStore{},
			Backend: &scriptBackend{err: errors.New("model overloaded")},
			Embedder: &stubEmbedder{vecs: map[string][]float32{
				"base question": {1, 0, 0},
			}},
			TopK:                5,
			SimilarityThreshold: 0.9,
			MaxRegeneration:     3,
		})

		_, err := o.Generate(ctx, base, memberScope(base))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generate candidate")
	})

	t.Run("embedding failure is a hard failure", func(t *testing.T) {
		base := baseDoc()

		o := NewOrchestrator(Params{
			Store:               &stubStore{},
			Backend:             &scriptBackend{candidates: []Candidate{{Question: "q"}}},
			Embedder:            &stubEmbedder{err: errors.New("embedding api down")},
			TopK:                5,
			SimilarityThreshold: 0.9,
		})

		_, err := o.Generate(ctx, base, memberScope(base))
		require.Error(t, err)
	})
}
