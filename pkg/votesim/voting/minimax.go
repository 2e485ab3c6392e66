package voting

import "github.com/freeeve/votesim/pkg/votesim/sim"

// Minimax elects the candidate whose worst pairwise loss (the largest
// margin by which any other candidate beats them) is smallest. A
// Condorcet winner, if one exists, always has a worst loss of 0 or less
// and therefore always wins under this rule.
type Minimax struct{}

func NewMinimax() *Minimax { return &Minimax{} }

func (m *Minimax) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	// minMargin[cand] is the worst (most negative) pairwise margin cand
	// holds against any other candidate; a Condorcet winner's is >= 0.
	minMargin := make([]int, s.Ncand)
	for cand := 0; cand < s.Ncand; cand++ {
		worst := s.IBeatsJBy[cand][(cand+1)%s.Ncand]
		for other := 0; other < s.Ncand; other++ {
			if other == cand {
				continue
			}
			if m := s.IBeatsJBy[cand][other]; m < worst {
				worst = m
			}
		}
		minMargin[cand] = worst
	}
	winner, runup := 0, 1
	if minMargin[1] > minMargin[0] {
		winner, runup = 1, 0
	}
	for cand := 2; cand < s.Ncand; cand++ {
		if minMargin[cand] > minMargin[winner] {
			runup = winner
			winner = cand
		} else if minMargin[cand] > minMargin[runup] {
			runup = cand
		}
	}
	return WinnerAndRunnerup{
		Winner:   CandScore{Cand: winner, Score: float64(minMargin[winner])},
		Runnerup: CandScore{Cand: runup, Score: float64(minMargin[runup])},
	}
}

func (m *Minimax) Name() string { return "Minimax" }

func (m *Minimax) ColumnName() string { return "minimax" }

func (m *Minimax) Strat() Strategy { return Honest }
