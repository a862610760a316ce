package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/famring/hearth/internal/models"
)

const (
	analyzerVersionPrefix = "ans-v1.0"
	analyzerTemperature   = 0.2
	analyzerMaxTokens     = 600
)

const analyzerSystemPrompt = `You grade one answer from a family Q&A service.
Respond with a JSON object:
{"summary": "<one-sentence summary of the answer>",
 "categories": ["<topic>", ...],
 "scores": {"sentiment": <-1..1>,
            "emotion": {"joy": <0..1>, "sadness": <0..1>, "anger": <0..1>, "fear": <0..1>, "neutral": <0..1>},
            "relevance_to_question": <0..1>,
            "relevance_to_category": <0..1>,
            "toxicity": <0..1>,
            "length": <answer length in characters>,
            "keywords": ["<keyword>", ...]}}
Write the summary and keywords in the same language as the answer.`

// Analyzer grades answers (sentiment, emotion, relevance, toxicity, keywords)
// via JSON-mode chat completions.
type Analyzer struct {
	client *Client
	now    func() time.Time
}

// NewAnalyzer creates an answer analyzer.
func NewAnalyzer(client *Client) *Analyzer {
	return &Analyzer{client: client, now: time.Now}
}

// Analyze grades one answer. An API failure is an error; a response that fails
// to decode is not: the analysis is returned with ParseOK false and the raw
// text preserved for inspection.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnswerAnalysis, error) {
	raw, _, err := a.client.ChatJSON(ctx, ChatJSONParams{
		System:      analyzerSystemPrompt,
		User:        a.buildPrompt(req),
		Temperature: analyzerTemperature,
		MaxTokens:   analyzerMaxTokens,
	})
	if err != nil {
		return models.AnswerAnalysis{}, fmt.Errorf("analyze answer: %w", err)
	}

	analysis := models.AnswerAnalysis{
		Raw:     raw,
		Version: fmt.Sprintf("%s:%s:%s", analyzerVersionPrefix, a.client.generationModel, a.now().Format("2006-01-02")),
	}

	var decoded struct {
		Summary    string         `json:"summary"`
		Categories []string       `json:"categories"`
		Scores     map[string]any `json:"scores"`
	}

	if !decodeJSONObject(raw, &decoded) {
		return analysis, nil
	}

	analysis.ParseOK = true
	analysis.Summary = decoded.Summary
	analysis.Categories = decoded.Categories
	analysis.Scores = sanitizeScores(decoded.Scores)

	return analysis, nil
}

func (a *Analyzer) buildPrompt(req models.AnalysisRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "Answer: %s\n", req.Answer)

	if req.QuestionCategory != "" {
		fmt.Fprintf(&b, "Question category: %s\n", req.QuestionCategory)
	}

	if len(req.QuestionTags) > 0 {
		fmt.Fprintf(&b, "Question tags: %s\n", strings.Join(req.QuestionTags, ", "))
	}

	if req.Language != "" {
		fmt.Fprintf(&b, "Output language: %s\n", req.Language)
	}

	return b.String()
}
