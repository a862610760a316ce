package openai

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/famring/hearth/internal/models"
)

// sanitizeScores clamps and rounds model-reported scores into their documented
// ranges. Scores the model omitted (or returned as garbage) stay nil rather
// than defaulting, so downstream consumers can tell "missing" from "zero".
func sanitizeScores(raw map[string]any) models.AnalysisScores {
	var out models.AnalysisScores

	if raw == nil {
		return out
	}

	if v, ok := toFloat(raw["sentiment"]); ok {
		out.Sentiment = ptr(round2(clamp(v, -1, 1)))
	}

	if emoRaw, ok := raw["emotion"].(map[string]any); ok {
		emotion := make(map[string]float64)

		for _, key := range []string{"joy", "sadness", "anger", "fear", "neutral"} {
			if v, ok := toFloat(emoRaw[key]); ok {
				emotion[key] = round2(clamp(v, 0, 1))
			}
		}

		if len(emotion) > 0 {
			out.Emotion = emotion
		}
	}

	if v, ok := toFloat(raw["relevance_to_question"]); ok {
		out.RelevanceToQuestion = ptr(round2(clamp(v, 0, 1)))
	}

	if v, ok := toFloat(raw["relevance_to_category"]); ok {
		out.RelevanceToCategory = ptr(round2(clamp(v, 0, 1)))
	}

	if v, ok := toFloat(raw["toxicity"]); ok {
		out.Toxicity = ptr(round2(clamp(v, 0, 1)))
	}

	if v, ok := toFloat(raw["length"]); ok {
		length := int(v)
		if length < 0 {
			length = 0
		}

		out.Length = &length
	}

	if kwRaw, ok := raw["keywords"].([]any); ok {
		for _, kw := range kwRaw {
			if s, ok := kw.(string); ok {
				out.Keywords = append(out.Keywords, s)
			}
		}
	}

	return out
}

// toFloat coerces JSON-decoded values (float64, json.Number, numeric string) to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
