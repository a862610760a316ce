package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/famring/hearth/internal/generation"
	"github.com/famring/hearth/internal/models"
)

// ErrMalformedCandidate is returned when the model response cannot be decoded
// into a question.
var ErrMalformedCandidate = errors.New("openai: malformed candidate response")

const generationMaxTokens = 300

// Generator implements generation.Backend on JSON-mode chat completions.
type Generator struct {
	client      *Client
	temperature float64
}

// NewGenerator creates a question generation backend.
func NewGenerator(client *Client, temperature float64) *Generator {
	return &Generator{client: client, temperature: temperature}
}

var _ generation.Backend = (*Generator)(nil)

// GenerateQuestion runs one completion and decodes {"question": ..., "level": ...}.
// A missing or empty question is an error; an out-of-range or unparseable level
// falls back to the defined defaults and never fails the attempt.
func (g *Generator) GenerateQuestion(ctx context.Context, prompt generation.Prompt) (generation.Candidate, error) {
	raw, _, err := g.client.ChatJSON(ctx, ChatJSONParams{
		System:      prompt.System,
		User:        prompt.User,
		Temperature: g.temperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return generation.Candidate{}, err
	}

	var decoded struct {
		Question string      `json:"question"`
		Level    json.Number `json:"level"`
	}

	if !decodeJSONObject(raw, &decoded) || decoded.Question == "" {
		return generation.Candidate{}, fmt.Errorf("%w: %q", ErrMalformedCandidate, truncate(raw, 120))
	}

	return generation.Candidate{
		Question: decoded.Question,
		Level:    models.LevelFromString(decoded.Level.String()),
		Model:    g.client.generationModel,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
