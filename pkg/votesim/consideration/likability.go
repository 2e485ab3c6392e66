package consideration

import "math/rand"

// Likability gives every candidate a single scalar of universal appeal,
// applied identically to every voter. Values are chi-square-with-one-degree
// of-freedom variates scaled by Mean: positive by construction, with
// standard deviation sqrt(2) * Mean.
type Likability struct {
	Mean float64

	scores []float64
}

// NewLikability returns a Likability consideration with the given mean.
func NewLikability(mean float64) *Likability {
	return &Likability{Mean: mean}
}

func (l *Likability) AddToScores(scores [][]float64, rng *rand.Rand) {
	ncand := 0
	if len(scores) > 0 {
		ncand = len(scores[0])
	}
	l.scores = l.scores[:0]
	for j := 0; j < ncand; j++ {
		x := rng.NormFloat64()
		candLike := x * x * l.Mean
		l.scores = append(l.scores, candLike)
		for i := range scores {
			scores[i][j] += candLike
		}
	}
}

func (l *Likability) Dim() int { return 1 }

func (l *Likability) Name() string { return "likability" }

func (l *Likability) PushPositions(report func(candidate int, pos []float64), finalCandidates []int) {
	for _, fc := range finalCandidates {
		report(fc, []float64{l.scores[fc]})
	}
}
