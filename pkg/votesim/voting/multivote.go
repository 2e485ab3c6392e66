package voting

import (
	"fmt"
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// Multivote lets each honest voter cast Nvotes unit votes, one at a time,
// always to whichever candidate currently has the highest remaining score;
// each time a candidate receives a vote, its remaining score is reduced by
// a fixed amount so repeat votes spread across the voter's favorites
// instead of piling onto one. Strategic voters skip the redistribution and
// bullet-vote all Nvotes onto their single favorite.
type Multivote struct {
	Strat_    Strategy
	Nvotes    int32
	SpreadFac float64

	rng        *rand.Rand
	tallies    Tallies
	candScores []float64
}

func NewMultivote(strat Strategy, nvotes int32, spreadFac float64, ncand int, rng *rand.Rand) *Multivote {
	return &Multivote{
		Strat_: strat, Nvotes: nvotes, SpreadFac: spreadFac,
		rng: rng, tallies: make(Tallies, ncand), candScores: make([]float64, ncand),
	}
}

func (m *Multivote) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range m.tallies {
		m.tallies[i] = 0
	}

	if m.Strat_ == Strategic {
		for i := 0; i < s.Ncit; i++ {
			m.tallies[s.Ranks[i][0]] += m.Nvotes
		}
		return tallyVotes(m.tallies, m.rng)
	}

	for _, utilities := range s.Scores {
		minScore, totalScore := utilities[0], 0.0
		for _, u := range utilities {
			if u < minScore {
				minScore = u
			}
			totalScore += u
		}
		copy(m.candScores, utilities)
		reduction := m.SpreadFac * (totalScore - minScore*float64(s.Ncand)) / float64(m.Nvotes)

		for v := int32(0); v < m.Nvotes; v++ {
			best := 0
			maxScore := m.candScores[0]
			for icand := 1; icand < s.Ncand; icand++ {
				if m.candScores[icand] > maxScore {
					best, maxScore = icand, m.candScores[icand]
				}
			}
			m.tallies[best]++
			m.candScores[best] -= reduction
		}
	}
	return tallyVotes(m.tallies, m.rng)
}

func (m *Multivote) Name() string {
	return fmt.Sprintf("Multivote, %s, %d votes", m.Strat_, m.Nvotes)
}

func (m *Multivote) ColumnName() string {
	if m.Strat_ == Honest {
		return fmt.Sprintf("multi_h_%dv", m.Nvotes)
	}
	return fmt.Sprintf("multi_s_%dv", m.Nvotes)
}

func (m *Multivote) Strat() Strategy { return m.Strat_ }
