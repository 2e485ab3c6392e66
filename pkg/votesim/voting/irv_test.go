package voting

import (
	"math/rand"
	"testing"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

func TestInstantRunoffHonestScenarioC(t *testing.T) {
	s := sim.New(5, 4)
	s.Scores = [][]float64{
		{4, 3, 2, 1},
		{1, 4, 2, 3},
		{3, 4, 2, 1},
		{3, 2, 1, 4},
		{4, 2, 3, 1},
	}
	s.RankCandidates()

	// Round 1 tallies: 2, 2, 0, 1 -> eliminate cand 2
	// Round 2 tallies: 2, 2, -, 1 -> eliminate cand 3
	// Round 3 tallies: 3, 2, -, - -> winner 0, runnerup 1
	rng := rand.New(rand.NewSource(1))
	m := NewInstantRunoff(Honest, 4, rng)
	result := m.Elect(s, nil)

	if result.Winner.Cand != 0 || result.Winner.Score != 3 {
		t.Errorf("winner = %+v, want cand 0 score 3", result.Winner)
	}
	if result.Runnerup.Cand != 1 || result.Runnerup.Score != 2 {
		t.Errorf("runnerup = %+v, want cand 1 score 2", result.Runnerup)
	}
}
