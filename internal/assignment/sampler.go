// Package assignment picks which family members receive the next question,
// favoring members under-served within the recent window.
package assignment

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/famring/hearth/internal/apperrors"
	"github.com/famring/hearth/internal/models"
)

// Version tags the sampling algorithm revision so callers can detect behavior changes.
const Version = "assign-v1"

// DefaultEpsilon is the weight floor applied when a member carries all of the
// recent load and their raw weight would drop to zero or below.
const DefaultEpsilon = 1e-9

// Sample draws pickCount distinct members without replacement, weighted by
// inverse recent-assignment frequency: with S the total recent count, member i
// gets weight max(epsilon, (1/N)*(1 - c_i/S)); with no history (S == 0) all
// members weigh equally. Each draw removes the chosen member and renormalizes
// the remainder. The sequential form is part of the algorithm, not an
// implementation detail, and must not be collapsed into one multinomial draw.
//
// epsilon <= 0 selects DefaultEpsilon. Results are intentionally
// non-deterministic across calls; no caller-supplied seed is accepted.
func Sample(members []models.MemberAssignmentStat, pickCount int, epsilon float64) (models.SamplingResult, error) {
	if len(members) == 0 {
		return models.SamplingResult{}, apperrors.NewValidationError("members", "members must not be empty")
	}

	if pickCount < 0 {
		return models.SamplingResult{}, apperrors.NewValidationError("pick_count",
			fmt.Sprintf("pick_count must not be negative, got %d", pickCount))
	}

	if pickCount > len(members) {
		return models.SamplingResult{}, apperrors.NewValidationError("pick_count",
			fmt.Sprintf("pick_count %d exceeds population size %d", pickCount, len(members)))
	}

	for _, m := range members {
		if m.RecentCount < 0 {
			return models.SamplingResult{}, apperrors.NewValidationError("recent_count",
				fmt.Sprintf("recent_count must not be negative, got %d for member %s", m.RecentCount, m.MemberID))
		}
	}

	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	probs := normalizedWeights(members, epsilon)

	pool := make([]models.MemberAssignmentStat, len(members))
	copy(pool, members)

	selected := make([]uuid.UUID, 0, pickCount)

	for range pickCount {
		chosen := drawOne(probs)

		selected = append(selected, pool[chosen].MemberID)

		// Without replacement: remove the winner and renormalize the remainder.
		pool = append(pool[:chosen], pool[chosen+1:]...)
		probs = append(probs[:chosen], probs[chosen+1:]...)

		if len(probs) == 0 {
			break
		}

		var remaining float64
		for _, p := range probs {
			remaining += p
		}

		if remaining <= 0 {
			// All remaining mass sat on epsilon floors; fall back to uniform.
			uniform := 1.0 / float64(len(probs))
			for i := range probs {
				probs[i] = uniform
			}
		} else {
			for i := range probs {
				probs[i] /= remaining
			}
		}
	}

	return models.SamplingResult{MemberIDs: selected, Version: Version}, nil
}

// normalizedWeights computes the inverse-frequency weights and normalizes them
// into a probability distribution.
func normalizedWeights(members []models.MemberAssignmentStat, epsilon float64) []float64 {
	n := len(members)
	base := 1.0 / float64(n)

	total := 0
	for _, m := range members {
		total += m.RecentCount
	}

	weights := make([]float64, n)

	if total <= 0 {
		for i := range weights {
			weights[i] = base
		}
	} else {
		for i, m := range members {
			w := base * (1.0 - float64(m.RecentCount)/float64(total))
			weights[i] = max(w, epsilon)
		}
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}

	if sum <= 0 {
		for i := range weights {
			weights[i] = base
		}

		return weights
	}

	for i := range weights {
		weights[i] /= sum
	}

	return weights
}

// drawOne picks an index proportional to probs, which must sum to ~1.
// Accumulated floating point error favors the last index, matching the
// cumulative-sum draw of the reference algorithm.
func drawOne(probs []float64) int {
	u := rand.Float64()

	var acc float64

	for i, p := range probs {
		acc += p
		if u <= acc {
			return i
		}
	}

	return len(probs) - 1
}
