package voting

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// fillRangeBallot maps one voter's raw scores onto integer grades in
// 0..nranks-1, linearly mapping the voter's personal min to 0 and max to
// nranks-1. Half-width endpoint bins make the extreme grades slightly less
// likely, matching the reference floor((score-min)/bin + 0.5) formula.
func fillRangeBallot(scores []float64, nranks int32, ballot Tallies) {
	minScore, maxScore := scores[0], scores[0]
	for _, sc := range scores[1:] {
		if sc < minScore {
			minScore = sc
		}
		if sc > maxScore {
			maxScore = sc
		}
	}
	ranksz := (maxScore - minScore) / float64(nranks-1)
	for icand, score := range scores {
		r := int32(math.Floor((score-minScore)/ranksz + 0.5))
		ballot[icand] = r
	}
}

// fillRangeBallotStrat fills a strategic range ballot: the voter picks a
// cutoff (scoreBreak) between their honest-frontrunner scores, then
// stretches everything above it toward the maximum grade and everything
// below toward the minimum, before the same binning as fillRangeBallot.
func fillRangeBallotStrat(scores []float64, nranks int32, ballot Tallies, scoreBreak, stretchFactor float64) {
	minScore, maxScore := scores[0], scores[0]
	for _, sc := range scores[1:] {
		if sc < minScore {
			minScore = sc
		}
		if sc > maxScore {
			maxScore = sc
		}
	}
	scoreRange := maxScore - minScore
	stretchedMax := minScore + scoreRange*stretchFactor
	ranksz := scoreRange * stretchFactor / float64(nranks-1)
	for icand, score := range scores {
		modScore := score
		if score >= scoreBreak {
			modScore = stretchedMax - (maxScore - score)
		}
		r := int32(math.Floor((modScore-minScore)/ranksz + 0.5))
		ballot[icand] = r
	}
}

// RangeVoting is Range voting; Nranks=2 is Approval.
type RangeVoting struct {
	Strat_                 Strategy
	Nranks                 int32
	StrategicStretchFactor float64

	rng     *rand.Rand
	tallies Tallies
	ballot  Tallies
}

// NewRangeVoting returns a Range/Approval method. strategicStretchFactor
// defaults to 4.0 when zero, matching the reference implementation's default.
func NewRangeVoting(strat Strategy, nranks int32, strategicStretchFactor float64, ncand int, rng *rand.Rand) *RangeVoting {
	if strategicStretchFactor == 0 {
		strategicStretchFactor = 4.0
	}
	return &RangeVoting{
		Strat_: strat, Nranks: nranks, StrategicStretchFactor: strategicStretchFactor,
		rng: rng, tallies: make(Tallies, ncand), ballot: make(Tallies, ncand),
	}
}

func (r *RangeVoting) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range r.tallies {
		r.tallies[i] = 0
	}
	for _, vscores := range s.Scores {
		switch r.Strat_ {
		case Honest:
			fillRangeBallot(vscores, r.Nranks, r.ballot)
		case Strategic:
			pre := honestPrev
			scoreBreak := (vscores[pre.Winner.Cand] + vscores[pre.Runnerup.Cand]) / 2.0
			fillRangeBallotStrat(vscores, r.Nranks, r.ballot, scoreBreak, r.StrategicStretchFactor)
		}
		for icand := range vscores {
			r.tallies[icand] += r.ballot[icand]
		}
	}
	return tallyVotes(r.tallies, r.rng)
}

func (r *RangeVoting) Name() string {
	if r.Nranks == 2 {
		return fmt.Sprintf("Approval, %s", r.Strat_)
	}
	return fmt.Sprintf("Range 1-%d, %s", r.Nranks, r.Strat_)
}

func (r *RangeVoting) ColumnName() string {
	if r.Nranks == 2 {
		if r.Strat_ == Honest {
			return "aprv_h"
		}
		return "aprv_s"
	}
	if r.Strat_ == Honest {
		return fmt.Sprintf("range_%d_h", r.Nranks)
	}
	return fmt.Sprintf("range_%d_s", r.Nranks)
}

func (r *RangeVoting) Strat() Strategy { return r.Strat_ }
