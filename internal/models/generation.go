package models

// GenerationMetadata describes how a question was produced.
type GenerationMetadata struct {
	// RAGCount is the number of prior documents actually retrieved as context.
	RAGCount int
	// RegenerationCount is the number of retries performed after duplicate rejections.
	RegenerationCount int
	// SimilarityWarning is set when the retry budget was exhausted and the last
	// candidate was returned despite failing the dedup check.
	SimilarityWarning bool
	// Model is the generation model that produced the question.
	Model string
}

// GenerationResult is the outcome of one orchestration call.
type GenerationResult struct {
	Question string
	Level    QuestionLevel
	Metadata GenerationMetadata
}
