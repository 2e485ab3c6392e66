package voting

import (
	"fmt"
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// Borda assigns each voter's rank-1 candidate topNcand points, rank-2
// topNcand-1 points, and so on down to 1 point for the last ranked
// candidate, where topNcand is RankTopN if positive or else the full
// candidate count. Strategic ballots give the honest frontrunner the
// voter prefers (the "friend") the maximum score and the other
// frontrunner (the "enemy") zero, keeping every other candidate's
// relative order but shifting their scores down by one slot each time
// a friend or enemy is skipped, so the enemy always lands on exactly 0.
type Borda struct {
	Strat_   Strategy
	RankTopN int

	rng     *rand.Rand
	tallies Tallies
}

func NewBorda(strat Strategy, rankTopN, ncand int, rng *rand.Rand) *Borda {
	return &Borda{Strat_: strat, RankTopN: rankTopN, rng: rng, tallies: make(Tallies, ncand)}
}

func (m *Borda) topNcand(ncand int) int {
	if m.RankTopN > 0 {
		return m.RankTopN
	}
	return ncand
}

func (m *Borda) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range m.tallies {
		m.tallies[i] = 0
	}
	topNcand := m.topNcand(s.Ncand)

	switch m.Strat_ {
	case Honest:
		for i := 0; i < s.Ncit; i++ {
			for rank := 0; rank < topNcand; rank++ {
				icand := s.Ranks[i][rank]
				m.tallies[icand] += int32(topNcand - rank)
			}
		}
	case Strategic:
		for i := 0; i < s.Ncit; i++ {
			friend, enemy := honestPrev.Winner.Cand, honestPrev.Runnerup.Cand
			if s.Scores[i][honestPrev.Winner.Cand] < s.Scores[i][honestPrev.Runnerup.Cand] {
				friend, enemy = enemy, friend
			}
			scoreShift := int32(-2) // leaves room for friend to score max
			for rank := 0; rank < s.Ncand; rank++ {
				icand := s.Ranks[i][rank]
				switch {
				case icand == friend:
					m.tallies[icand] += int32(topNcand - 1)
					scoreShift++
				case icand == enemy:
					scoreShift++
				default:
					if v := int32(topNcand-rank) + scoreShift; v > 0 {
						m.tallies[icand] += v
					}
				}
			}
		}
	}
	return tallyVotes(m.tallies, m.rng)
}

func (m *Borda) Name() string {
	if m.RankTopN > 0 {
		return fmt.Sprintf("Borda top-%d, %s", m.RankTopN, m.Strat_)
	}
	return fmt.Sprintf("Borda, %s", m.Strat_)
}

func (m *Borda) strategyLetter() string {
	if m.Strat_ == Strategic {
		return "s"
	}
	return "h"
}

func (m *Borda) ColumnName() string {
	if m.RankTopN > 0 {
		return fmt.Sprintf("borda%d_%s", m.RankTopN, m.strategyLetter())
	}
	return fmt.Sprintf("borda_%s", m.strategyLetter())
}

func (m *Borda) Strat() Strategy { return m.Strat_ }
