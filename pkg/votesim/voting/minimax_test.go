package voting

import (
	"testing"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

func TestMinimaxElectsCondorcetWinner(t *testing.T) {
	s := condorcetWinnerSim()
	m := NewMinimax()
	result := m.Elect(s, nil)
	if result.Winner.Cand != 2 {
		t.Errorf("winner = %d, want 2 (the Condorcet winner)", result.Winner.Cand)
	}
}

func TestMinimaxScenarioE(t *testing.T) {
	s := sim.New(1, 4)
	s.IBeatsJBy = [][]int{
		{0, -16, -16, -16},
		{16, 0, 36, 36},
		{16, -36, 0, 66},
		{16, -36, -66, 0},
	}
	m := NewMinimax()
	result := m.Elect(s, nil)
	if result.Winner.Cand != 1 || result.Winner.Score != 16 {
		t.Errorf("winner = %+v, want cand 1 score 16", result.Winner)
	}
	if result.Runnerup.Cand != 0 || result.Runnerup.Score != -16 {
		t.Errorf("runnerup = %+v, want cand 0 score -16", result.Runnerup)
	}
}
