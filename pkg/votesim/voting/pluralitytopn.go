package voting

import "github.com/freeeve/votesim/pkg/votesim/sim"

// PluralityTopN is block plurality: every voter's favorite gets a
// first-place tally as in single-winner Plurality, and the N candidates
// with the most tallies all win a seat.
type PluralityTopN struct{}

func NewPluralityTopN() *PluralityTopN { return &PluralityTopN{} }

func (m *PluralityTopN) MultiElect(s *sim.Sim, nwinners int) []CandScore {
	tallies := make(Tallies, s.Ncand)
	for i := 0; i < s.Ncit; i++ {
		tallies[s.Ranks[i][0]]++
	}
	order := make([]int, s.Ncand)
	for i := range order {
		order[i] = i
	}
	for a := 1; a < len(order); a++ {
		v := order[a]
		b := a - 1
		for b >= 0 && tallies[order[b]] < tallies[v] {
			order[b+1] = order[b]
			b--
		}
		order[b+1] = v
	}
	if nwinners > s.Ncand {
		nwinners = s.Ncand
	}
	winners := make([]CandScore, nwinners)
	for i := 0; i < nwinners; i++ {
		winners[i] = CandScore{Cand: order[i], Score: float64(tallies[order[i]])}
	}
	return winners
}

func (m *PluralityTopN) Name() string { return "Plurality Top N" }

func (m *PluralityTopN) ColumnName() string { return "pl_topn" }
