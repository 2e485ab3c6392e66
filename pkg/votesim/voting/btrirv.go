package voting

import (
	"fmt"
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// BTRIRV is Bottom-Two-Runoff Instant Runoff: each round the two
// lowest-tallying standing candidates face off head-to-head on the
// pairwise margin table, and the loser of that runoff is eliminated,
// rather than simply eliminating the single lowest tallier.
type BTRIRV struct {
	Strat_ Strategy

	rng      *rand.Rand
	tallies  Tallies
	excluded []bool
}

func NewBTRIRV(strat Strategy, ncand int, rng *rand.Rand) *BTRIRV {
	return &BTRIRV{Strat_: strat, rng: rng, tallies: make(Tallies, ncand), excluded: make([]bool, ncand)}
}

func (m *BTRIRV) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range m.excluded {
		m.excluded[i] = false
	}
	nstanding := s.Ncand
	var result WinnerAndRunnerup
	for {
		for i := range m.tallies {
			m.tallies[i] = 0
		}
		for i := 0; i < s.Ncit; i++ {
			for rank := 0; rank < s.Ncand; rank++ {
				icand := s.Ranks[i][rank]
				if !m.excluded[icand] {
					m.tallies[icand]++
					break
				}
			}
		}
		result = m.tallyStanding(s)
		majority := (s.Ncit + 1) / 2
		if result.Winner.Score >= float64(majority) || nstanding <= 2 {
			return result
		}
		// Eliminate the lower of the bottom two standing candidates, unless
		// it pairwise-beats the other: a candidate that still wins its
		// head-to-head against the next-lowest survives, and that
		// next-lowest is eliminated instead.
		bottomA, bottomB := m.findBottomTwo()
		loser := bottomA
		if s.IBeatsJBy[bottomA][bottomB] > 0 {
			loser = bottomB
		}
		m.excluded[loser] = true
		nstanding--
	}
}

func (m *BTRIRV) tallyStanding(s *sim.Sim) WinnerAndRunnerup {
	electee, runup := -1, -1
	mostVotes, runupVotes := int32(-1), int32(-1)
	for icand := 0; icand < s.Ncand; icand++ {
		if m.excluded[icand] {
			continue
		}
		v := m.tallies[icand]
		if v > mostVotes {
			runup, runupVotes = electee, mostVotes
			electee, mostVotes = icand, v
		} else if v > runupVotes {
			runup, runupVotes = icand, v
		}
	}
	if mostVotes == runupVotes && m.rng.Intn(2) == 1 {
		electee, runup = runup, electee
		mostVotes, runupVotes = runupVotes, mostVotes
	}
	return WinnerAndRunnerup{
		Winner:   CandScore{Cand: electee, Score: float64(mostVotes)},
		Runnerup: CandScore{Cand: runup, Score: float64(runupVotes)},
	}
}

// findBottomTwo returns the two lowest-tallying standing candidates.
func (m *BTRIRV) findBottomTwo() (int, int) {
	a, b := -1, -1
	aVotes, bVotes := int32(1<<30), int32(1<<30)
	for icand := range m.tallies {
		if m.excluded[icand] {
			continue
		}
		v := m.tallies[icand]
		if v < aVotes {
			b, bVotes = a, aVotes
			a, aVotes = icand, v
		} else if v < bVotes {
			b, bVotes = icand, v
		}
	}
	return a, b
}

func (m *BTRIRV) Name() string { return fmt.Sprintf("BTR-IRV, %s", m.Strat_) }

func (m *BTRIRV) ColumnName() string {
	if m.Strat_ == Honest {
		return "btrirv_h"
	}
	return "btrirv_s"
}

func (m *BTRIRV) Strat() Strategy { return m.Strat_ }
