package generation

import (
	"github.com/famring/hearth/pkg/embeddings"
)

// Deduplicator tracks the question embeddings produced within one orchestration
// session and rejects candidates too similar to any of them. It is seeded with
// the base question so a follow-up can never repeat the question just answered.
// Not safe for concurrent use; sessions are request-scoped.
type Deduplicator struct {
	threshold  float64
	candidates []localCandidate
}

type localCandidate struct {
	text string
	vec  []float32
}

// NewDeduplicator creates a session deduplicator. threshold is the cosine
// similarity at or above which a candidate counts as a duplicate.
func NewDeduplicator(threshold float64) *Deduplicator {
	return &Deduplicator{threshold: threshold}
}

// Check returns the max cosine similarity of vec against all session candidates
// and whether that maximum reaches the duplicate threshold.
// An empty session yields (0, false).
func (d *Deduplicator) Check(vec []float32) (maxSim float64, duplicate bool) {
	for _, c := range d.candidates {
		if sim := embeddings.Cosine(vec, c.vec); sim > maxSim {
			maxSim = sim
		}
	}

	return maxSim, maxSim >= d.threshold
}

// Add records a candidate in the session. Rejected candidates are recorded too,
// so later retries must diverge from everything generated so far.
func (d *Deduplicator) Add(text string, vec []float32) {
	d.candidates = append(d.candidates, localCandidate{text: text, vec: vec})
}

// Len returns the number of recorded session candidates.
func (d *Deduplicator) Len() int {
	return len(d.candidates)
}
