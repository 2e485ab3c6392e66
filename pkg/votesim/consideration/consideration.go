// Package consideration implements the additive contributors to the
// voter x candidate utility matrix: Likability, Issues, Irrational, and an
// optional neural-network-backed Likability variant.
package consideration

import "math/rand"

// Consideration contributes additively to a utility matrix each trial and
// may cache per-trial candidate positions for reporting.
type Consideration interface {
	// AddToScores increments scores[i][j] for every voter i, candidate j.
	AddToScores(scores [][]float64, rng *rand.Rand)
	// Dim reports the dimensionality of the positions this consideration
	// can report alongside candidates, for diagnostics.
	Dim() int
	// Name is the human label, also used as the output column name.
	Name() string
	// PushPositions emits the cached candidate positions, in the order
	// given by finalCandidates. Considerations with no meaningful
	// position report math.NaN().
	PushPositions(report func(candidate int, pos []float64), finalCandidates []int)
}
