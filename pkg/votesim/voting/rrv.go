package voting

import "github.com/freeeve/votesim/pkg/votesim/sim"

// RRV is Reweighted Range Voting: a multi-winner method that elects
// candidates one at a time by total range-ballot score, then down-weights
// each remaining voter's future influence in proportion to how well they
// were already served by the candidates elected so far. K (typically
// 0.5-1.0) controls how aggressively satisfied voters are down-weighted;
// smaller K spreads winners further apart in issue space.
type RRV struct {
	Nranks int32
	K      float64
}

// NewRRV returns an RRV method with K defaulting to 1.0.
func NewRRV(nranks int32) *RRV { return &RRV{Nranks: nranks, K: 1.0} }

// NewRRVWithK returns an RRV method with an explicit K.
func NewRRVWithK(nranks int32, k float64) *RRV { return &RRV{Nranks: nranks, K: k} }

func (m *RRV) MultiElect(s *sim.Sim, nwinners int) []CandScore {
	ballots := make([][]float64, s.Ncit)
	maxGrade := float64(m.Nranks - 1)
	for i, vscores := range s.Scores {
		ballot := make(Tallies, s.Ncand)
		fillRangeBallot(vscores, m.Nranks, ballot)
		row := make([]float64, s.Ncand)
		for icand, g := range ballot {
			row[icand] = float64(g)
		}
		ballots[i] = row
	}

	weights := make([]float64, s.Ncit)
	for i := range weights {
		weights[i] = 1.0
	}
	elected := make([]bool, s.Ncand)
	winners := make([]CandScore, 0, nwinners)

	for round := 0; round < nwinners; round++ {
		totals := make([]float64, s.Ncand)
		for icand := 0; icand < s.Ncand; icand++ {
			if elected[icand] {
				continue
			}
			for i := range ballots {
				totals[icand] += weights[i] * ballots[i][icand]
			}
		}
		best := -1
		for icand := 0; icand < s.Ncand; icand++ {
			if elected[icand] {
				continue
			}
			if best == -1 || totals[icand] > totals[best] {
				best = icand
			}
		}
		elected[best] = true
		winners = append(winners, CandScore{Cand: best, Score: totals[best]})

		for i := range weights {
			sum := 0.0
			for icand := 0; icand < s.Ncand; icand++ {
				if elected[icand] {
					sum += ballots[i][icand]
				}
			}
			weights[i] = m.K / (m.K + sum/maxGrade)
		}
	}
	return winners
}

func (m *RRV) Name() string { return "Reweighted Range Voting" }

func (m *RRV) ColumnName() string { return "rrv" }
