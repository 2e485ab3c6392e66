package voting

import (
	"math/rand"
	"testing"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// condorcetWinnerSim builds a 5-voter, 4-candidate scenario where candidate
// 2 beats every other candidate pairwise.
func condorcetWinnerSim() *sim.Sim {
	s := sim.New(5, 4)
	s.Scores = [][]float64{
		{5, 1, 9, 2},
		{4, 2, 8, 3},
		{1, 0, 10, 1},
		{6, 3, 9, 0},
		{2, 1, 7, 4},
	}
	s.RankCandidates()
	return s
}

func TestRankedPairsElectsCondorcetWinner(t *testing.T) {
	s := condorcetWinnerSim()
	rng := rand.New(rand.NewSource(1))
	m := NewRankedPairs(4, rng)
	result := m.Elect(s, nil)
	if result.Winner.Cand != 2 {
		t.Errorf("winner = %d, want 2 (the Condorcet winner)", result.Winner.Cand)
	}
}

// TestRankedPairsScenarioD reproduces the classic ranked-pairs cycle
// example: 4 voters A>B>C, 3 voters B>C>A, 5 voters C>A>B. A beats B by 6,
// B beats C by 2, C beats A by 4; locking A>B then C>A, B>C would close a
// cycle and must be skipped, leaving C the winner.
func TestRankedPairsScenarioD(t *testing.T) {
	s := sim.New(12, 3)
	row := func(a, b, c float64) []float64 { return []float64{a, b, c} }
	rows := make([][]float64, 0, 12)
	for i := 0; i < 4; i++ {
		rows = append(rows, row(3, 2, 1)) // A>B>C
	}
	for i := 0; i < 3; i++ {
		rows = append(rows, row(1, 3, 2)) // B>C>A
	}
	for i := 0; i < 5; i++ {
		rows = append(rows, row(2, 1, 3)) // C>A>B
	}
	s.Scores = rows
	s.RankCandidates()

	if s.IBeatsJBy[0][1] != 6 {
		t.Errorf("A beats B by %d, want 6", s.IBeatsJBy[0][1])
	}
	if s.IBeatsJBy[1][2] != 2 {
		t.Errorf("B beats C by %d, want 2", s.IBeatsJBy[1][2])
	}
	if s.IBeatsJBy[2][0] != 4 {
		t.Errorf("C beats A by %d, want 4", s.IBeatsJBy[2][0])
	}

	rng := rand.New(rand.NewSource(1))
	m := NewRankedPairs(3, rng)
	result := m.Elect(s, nil)
	if result.Winner.Cand != 2 {
		t.Errorf("winner = %d, want 2 (C)", result.Winner.Cand)
	}
}
