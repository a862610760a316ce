package openai

import (
	"context"
	"fmt"
	"strings"
)

const (
	summaryTemperature = 0.7
	summaryMaxTokens   = 200
)

const summarizerSystemPrompt = `You write one playful, newsflash-style headline summarizing
a family's recent Q&A activity for their home feed. Keep it to a single sentence in the
same language as the answers, mention concrete moments when possible, and never invent
events that are not in the input.

Respond with a JSON object: {"headline": "<the headline>"}`

// Summarizer produces period summaries of a family's Q&A activity.
type Summarizer struct {
	client *Client
}

// NewSummarizer creates a family summary generator.
func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize turns the period's QA texts into a single headline.
// qaTexts may be empty; the model is told there was no activity.
func (s *Summarizer) Summarize(ctx context.Context, qaTexts []string, periodLabel string, answerCount int) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Period: %s\n", periodLabel)
	fmt.Fprintf(&b, "Answers in period: %d\n\n", answerCount)

	if len(qaTexts) == 0 {
		b.WriteString("No answers were recorded in this period.\n")
	} else {
		for i, text := range qaTexts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, text)
		}
	}

	raw, _, err := s.client.ChatJSON(ctx, ChatJSONParams{
		System:      summarizerSystemPrompt,
		User:        b.String(),
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize family activity: %w", err)
	}

	var decoded struct {
		Headline string `json:"headline"`
	}

	if !decodeJSONObject(raw, &decoded) || decoded.Headline == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedCandidate, truncate(raw, 120))
	}

	return decoded.Headline, nil
}
