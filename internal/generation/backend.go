// Package generation drives the retrieve → prompt → generate → dedup → retry
// cycle that turns an answered question into a personalized follow-up.
package generation

import (
	"context"

	"github.com/famring/hearth/internal/models"
)

// Prompt is the deterministic prompt for one generation attempt.
type Prompt struct {
	System string
	User   string
}

// Candidate is one generated question with its level and the producing model.
type Candidate struct {
	Question string
	Level    models.QuestionLevel
	Model    string
}

// Backend is the text generation capability consumed by the orchestrator.
// A backend error is the orchestrator's only fatal condition.
type Backend interface {
	GenerateQuestion(ctx context.Context, prompt Prompt) (Candidate, error)
}
