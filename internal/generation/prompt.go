package generation

import (
	"fmt"
	"strings"

	"github.com/famring/hearth/internal/models"
)

const systemPrompt = `You are a warm conversation companion for a family Q&A service.
Given a family member's latest answered question and excerpts from their past answers,
write ONE follow-up question in the same language as the input that invites the member
to share more. The question must be specific to what they shared, must not repeat any
question shown, and must stay under 100 characters.

Respond with a JSON object: {"question": "<the question>", "level": <1-4>}
where level is the question's depth: 1 easy fact, 2 everyday conversation,
3 reflective, 4 emotional or philosophical.`

// BuildPrompt renders the deterministic prompt for one orchestration session.
// Context documents must already be ordered most-similar first; their order is
// preserved in the rendering.
func BuildPrompt(base models.QADocument, ragContext []models.QADocument) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Family member: %s\n\n", base.RoleLabel)
	fmt.Fprintf(&b, "Latest question: %s\n", base.Question)
	fmt.Fprintf(&b, "Latest answer: %s\n\n", base.Answer)
	fmt.Fprintf(&b, "Past answers (most relevant first):\n%s\n", formatRAGContext(ragContext))

	return Prompt{System: systemPrompt, User: b.String()}
}

// formatRAGContext renders retrieved documents as numbered context lines.
func formatRAGContext(docs []models.QADocument) string {
	if len(docs) == 0 {
		return "No past answers recorded."
	}

	lines := make([]string, 0, len(docs))
	for i, doc := range docs {
		lines = append(lines, fmt.Sprintf("%d. [%s] %s - Q: %s / A: %s",
			i+1, doc.AnsweredAt.Format("2006-01-02"), doc.RoleLabel, doc.Question, doc.Answer))
	}

	return strings.Join(lines, "\n")
}
