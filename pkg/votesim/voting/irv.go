package voting

import (
	"fmt"
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// InstantRunoff repeatedly eliminates the candidate with the fewest
// first-place votes among those still standing, transferring each
// eliminated ballot to its highest-ranked remaining candidate, until one
// candidate holds at least half the first-place votes (rounded up) or only
// two remain.
type InstantRunoff struct {
	Strat_ Strategy

	rng      *rand.Rand
	tallies  Tallies
	excluded []bool
}

func NewInstantRunoff(strat Strategy, ncand int, rng *rand.Rand) *InstantRunoff {
	return &InstantRunoff{Strat_: strat, rng: rng, tallies: make(Tallies, ncand), excluded: make([]bool, ncand)}
}

func (m *InstantRunoff) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
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
		loser := m.findLowest(s)
		m.excluded[loser] = true
		nstanding--
	}
}

func (m *InstantRunoff) tallyStanding(s *sim.Sim) WinnerAndRunnerup {
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

func (m *InstantRunoff) findLowest(s *sim.Sim) int {
	lowest := -1
	lowestVotes := int32(1 << 30)
	for icand := 0; icand < s.Ncand; icand++ {
		if m.excluded[icand] {
			continue
		}
		if m.tallies[icand] < lowestVotes {
			lowest, lowestVotes = icand, m.tallies[icand]
		}
	}
	return lowest
}

func (m *InstantRunoff) Name() string { return fmt.Sprintf("Instant Runoff, %s", m.Strat_) }

func (m *InstantRunoff) ColumnName() string {
	if m.Strat_ == Honest {
		return "irv_h"
	}
	return "irv_s"
}

func (m *InstantRunoff) Strat() Strategy { return m.Strat_ }
