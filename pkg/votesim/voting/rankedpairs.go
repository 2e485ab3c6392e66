package voting

import (
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// RankedPairs locks in candidate pairoffs in descending order of margin,
// skipping any pair that would create a cycle in the locked-in graph, then
// declares the candidate with no incoming locked-in edge the winner.
type RankedPairs struct {
	rng    *rand.Rand
	locked [][]bool
}

func NewRankedPairs(ncand int, rng *rand.Rand) *RankedPairs {
	locked := make([][]bool, ncand)
	for i := range locked {
		locked[i] = make([]bool, ncand)
	}
	return &RankedPairs{rng: rng, locked: locked}
}

func (m *RankedPairs) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range m.locked {
		for j := range m.locked[i] {
			m.locked[i][j] = false
		}
	}
	pairs := findCandidatePairoffs(s)
	for _, pair := range pairs {
		lockIn(m.locked, pair)
	}
	winner := findLockedInWinner(m.locked)
	runup := 0
	if winner == 0 {
		runup = 1
	}
	bestMargin := -1 << 30
	for other := 0; other < s.Ncand; other++ {
		if other == winner {
			continue
		}
		margin := s.IBeatsJBy[winner][other]
		if margin > bestMargin {
			bestMargin = margin
			runup = other
		}
	}
	return WinnerAndRunnerup{
		Winner:   CandScore{Cand: winner, Score: float64(s.Ncand)},
		Runnerup: CandScore{Cand: runup, Score: float64(bestMargin)},
	}
}

func (m *RankedPairs) Name() string { return "Ranked Pairs" }

func (m *RankedPairs) ColumnName() string { return "rp" }

func (m *RankedPairs) Strat() Strategy { return Honest }
