package models

// AnalysisRequest asks for analysis of one answer in its question's context.
type AnalysisRequest struct {
	Question string
	Answer   string
	// QuestionCategory and QuestionTags give the model grading context; optional.
	QuestionCategory string
	QuestionTags     []string
	// Language hints the output language; empty lets the model follow the input.
	Language string
}

// AnalysisScores holds the clamped scores from answer analysis.
// Pointer fields are nil when the model did not return that score.
type AnalysisScores struct {
	// Sentiment is in [-1, 1].
	Sentiment *float64
	// Emotion maps joy/sadness/anger/fear/neutral to [0, 1].
	Emotion map[string]float64
	// RelevanceToQuestion, RelevanceToCategory and Toxicity are in [0, 1].
	RelevanceToQuestion *float64
	RelevanceToCategory *float64
	Toxicity            *float64
	// Length is the answer length reported by the model, never negative.
	Length *int
	// Keywords are passed through unmodified.
	Keywords []string
}

// AnswerAnalysis is the structured result of analyzing one answer.
type AnswerAnalysis struct {
	Summary    string
	Categories []string
	Scores     AnalysisScores
	// Version tags the analyzer revision and model, e.g. "ans-v1.0:gpt-4.1-nano:2026-08-28".
	Version string
	// Raw is the unparsed model output; ParseOK reports whether it decoded cleanly.
	Raw     string
	ParseOK bool
}
