package consideration

import (
	"math"
	"math/rand"
)

const sqrt3 = 1.732050807568877293527446341505872367

// IssueAxis is one abstract axis of voter preference (e.g. conservative vs.
// liberal). Scores are penalized by Euclidean distance in issue space,
// clipped at Horizon along each axis.
type IssueAxis struct {
	Sigma    float64
	Halfcsep float64
	// Halfvsep defaults to Halfcsep when nil.
	Halfvsep *float64
	Uniform  bool
	// Horizon defaults to a very large value (no clipping) when zero.
	Horizon float64
}

func (a IssueAxis) horizonOrDefault() float64 {
	if a.Horizon == 0 {
		return 1.0e100
	}
	return a.Horizon
}

func (a IssueAxis) halfvsepOrDefault() float64 {
	if a.Halfvsep != nil {
		return *a.Halfvsep
	}
	return a.Halfcsep
}

func (a IssueAxis) genValue(rng *rand.Rand, isVoter bool) float64 {
	sep := a.Halfcsep
	if isVoter {
		sep = a.halfvsepOrDefault()
	}
	if rng.Intn(2) == 1 {
		sep = -sep
	}
	if a.Uniform {
		u := rng.Float64()*(2*sqrt3) - sqrt3
		return u*a.Sigma + sep
	}
	return rng.NormFloat64()*a.Sigma + sep
}

// Issues models an ordered list of issue axes that candidates and voters
// each occupy a position on; utility is the negative clipped Euclidean
// distance between a voter and a candidate across all axes.
type Issues struct {
	Axes []IssueAxis

	candPosition [][]float64 // [cand][axis]
	horizonSq    []float64
}

// NewIssues returns an Issues consideration for the given axes.
func NewIssues(axes []IssueAxis) *Issues {
	horizonSq := make([]float64, len(axes))
	for i, a := range axes {
		h := a.horizonOrDefault()
		horizonSq[i] = h * h
	}
	return &Issues{Axes: axes, horizonSq: horizonSq}
}

func (is *Issues) AddToScores(scores [][]float64, rng *rand.Rand) {
	ncit := len(scores)
	ncand := 0
	if ncit > 0 {
		ncand = len(scores[0])
	}
	npos := len(is.Axes)

	is.candPosition = make([][]float64, ncand)
	for i := 0; i < ncand; i++ {
		is.candPosition[i] = make([]float64, npos)
		for p, axis := range is.Axes {
			is.candPosition[i][p] = axis.genValue(rng, false)
		}
	}

	citPosition := make([]float64, npos)
	for j := 0; j < ncit; j++ {
		for p, axis := range is.Axes {
			citPosition[p] = axis.genValue(rng, true)
		}
		for i := 0; i < ncand; i++ {
			distsq := 0.0
			for p := 0; p < npos; p++ {
				diff := is.candPosition[i][p] - citPosition[p]
				diffsq := diff * diff
				if diffsq < is.horizonSq[p] {
					distsq += diffsq
				} else {
					distsq += is.horizonSq[p]
				}
			}
			scores[j][i] -= math.Sqrt(distsq)
		}
	}
}

func (is *Issues) Dim() int { return len(is.Axes) }

func (is *Issues) Name() string { return "issues" }

func (is *Issues) PushPositions(report func(candidate int, pos []float64), finalCandidates []int) {
	for _, fc := range finalCandidates {
		pos := make([]float64, len(is.candPosition[fc]))
		copy(pos, is.candPosition[fc])
		report(fc, pos)
	}
}
