package voting

import (
	"math/rand"
	"testing"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// TestBTRIRVScenarioReference reproduces the reference implementation's
// embedded fixture: 42 voters prefer 0>1>2>3, 26 prefer 1>2>3>0, 15 prefer
// 2>3>1>0, and 17 prefer 3>2>1>0. Candidate 3 is eliminated first (2
// pairwise-beats 3), then candidate 2 (1 pairwise-beats 2), leaving
// candidate 1 with a majority.
func TestBTRIRVScenarioReference(t *testing.T) {
	s := sim.New(100, 4)
	row := func(a, b, c, d float64) []float64 { return []float64{a, b, c, d} }
	rows := make([][]float64, 0, 100)
	for i := 0; i < 42; i++ {
		rows = append(rows, row(-1, -2, -3, -4)) // 0>1>2>3
	}
	for i := 0; i < 26; i++ {
		rows = append(rows, row(-4, -1, -2, -3)) // 1>2>3>0
	}
	for i := 0; i < 15; i++ {
		rows = append(rows, row(-4, -3, -1, -2)) // 2>3>1>0
	}
	for i := 0; i < 17; i++ {
		rows = append(rows, row(-4, -3, -2, -1)) // 3>2>1>0
	}
	s.Scores = rows
	s.RankCandidates()

	rng := rand.New(rand.NewSource(1))
	m := NewBTRIRV(Honest, 4, rng)
	result := m.Elect(s, nil)

	if result.Winner.Cand != 1 || result.Winner.Score != 58 {
		t.Errorf("winner = %+v, want cand 1 score 58", result.Winner)
	}
	if result.Runnerup.Cand != 0 || result.Runnerup.Score != 42 {
		t.Errorf("runnerup = %+v, want cand 0 score 42", result.Runnerup)
	}
}

func TestBTRIRVHonest(t *testing.T) {
	s := sim.New(5, 4)
	s.Scores = [][]float64{
		{10, 5, 3, 0},
		{9, 6, 4, 1},
		{0, 2, 8, 10},
		{1, 3, 9, 8},
		{2, 4, 9, 7},
	}
	s.RankCandidates()

	rng := rand.New(rand.NewSource(1))
	m := NewBTRIRV(Honest, 4, rng)
	result := m.Elect(s, nil)

	if result.Winner.Cand < 0 || result.Winner.Cand >= 4 {
		t.Fatalf("winner out of range: %d", result.Winner.Cand)
	}
	if result.Winner.Cand == result.Runnerup.Cand {
		t.Error("winner and runnerup must differ")
	}
}
