package sim

import "testing"

// setupScores builds a Sim from groups of (ballot, multiplicity) pairs,
// replicating each ballot's scores across that many voter rows.
func setupScores(t *testing.T, groups []struct {
	scores []float64
	count  int
}) *Sim {
	t.Helper()
	ncand := len(groups[0].scores)
	ncit := 0
	for _, g := range groups {
		ncit += g.count
	}
	s := New(ncit, ncand)
	row := 0
	for _, g := range groups {
		for k := 0; k < g.count; k++ {
			copy(s.Scores[row], g.scores)
			row++
		}
	}
	return s
}

func TestSmithSetThreeWayCycle(t *testing.T) {
	s := setupScores(t, []struct {
		scores []float64
		count  int
	}{
		{[]float64{-2, -3, -4, -1}, 40}, // D>A>B>C
		{[]float64{-3, -1, -2, -4}, 35}, // B>C>A>D
		{[]float64{-2, -3, -1, -4}, 25}, // C>A>B>D
	})
	s.RankCandidates()

	want := [][]int{
		{0, 40 - 35 + 25, 40 - 35 - 25, -40 + 35 + 25},
		{-(40 - 35 + 25), 0, 40 + 35 - 25, -40 + 35 + 25},
		{-(40 - 35 - 25), -(40 + 35 - 25), 0, -40 + 35 + 25},
		{-(-40 + 35 + 25), -(-40 + 35 + 25), -(-40 + 35 + 25), 0},
	}
	for i := range want {
		for j := range want[i] {
			if s.IBeatsJBy[i][j] != want[i][j] {
				t.Fatalf("IBeatsJBy[%d][%d] = %d, want %d", i, j, s.IBeatsJBy[i][j], want[i][j])
			}
		}
	}

	s.FindSmithSet()
	wantSmith := []bool{true, true, true, false}
	for j, in := range wantSmith {
		if s.InSmithSet[j] != in {
			t.Errorf("InSmithSet[%d] = %v, want %v", j, s.InSmithSet[j], in)
		}
	}
	if got := s.SmithSetSize(); got != 3 {
		t.Errorf("SmithSetSize() = %d, want 3", got)
	}
}

func TestSmithSetCondorcetWinner(t *testing.T) {
	s := New(5, 4)
	rows := [][]float64{
		{-3.1, -4.1, -0.9, -3.3},
		{-5.2, -2.2, -2.9, -5.3},
		{-3.5, -4.0, -1.0, -3.7},
		{-5.4, -3.1, -2.8, -5.6},
		{-2.1, -6.0, -0.8, -2.5},
	}
	for i, r := range rows {
		copy(s.Scores[i], r)
	}
	s.RankCandidates()

	want := [][]int{
		{0, 1, -5, 5},
		{-1, 0, -3, -1},
		{5, 3, 0, 5},
		{-5, 1, -5, 0},
	}
	for i := range want {
		for j := range want[i] {
			if s.IBeatsJBy[i][j] != want[i][j] {
				t.Fatalf("IBeatsJBy[%d][%d] = %d, want %d", i, j, s.IBeatsJBy[i][j], want[i][j])
			}
		}
	}

	s.FindSmithSet()
	if got := s.SmithSetSize(); got != 1 {
		t.Errorf("SmithSetSize() = %d, want 1", got)
	}
	wantSmith := []bool{false, false, true, false}
	for j, in := range wantSmith {
		if s.InSmithSet[j] != in {
			t.Errorf("InSmithSet[%d] = %v, want %v", j, s.InSmithSet[j], in)
		}
	}
}

func TestComputeRegretsInvariants(t *testing.T) {
	s := New(5, 4)
	rows := [][]float64{
		{4, 3, 2, 1},
		{1, 4, 2, 3},
		{3, 4, 2, 1},
		{3, 2, 1, 4},
		{3, 2, 4, 1},
	}
	for i, r := range rows {
		copy(s.Scores[i], r)
	}
	s.ComputeRegrets()

	minRegret := s.Regrets[0]
	argmin := 0
	for j, r := range s.Regrets {
		if r < minRegret {
			minRegret = r
			argmin = j
		}
		if r < 0 {
			t.Errorf("Regrets[%d] = %v, want >= 0", j, r)
		}
	}
	if minRegret != 0 {
		t.Errorf("min(regrets) = %v, want 0", minRegret)
	}

	totals := make([]float64, s.Ncand)
	for j := 0; j < s.Ncand; j++ {
		for i := 0; i < s.Ncit; i++ {
			totals[j] += s.Scores[i][j]
		}
	}
	argmax := 0
	for j, t2 := range totals {
		if t2 > totals[argmax] {
			argmax = j
		}
	}
	if argmin != argmax {
		t.Errorf("argmin(regrets) = %d, argmax(column sums) = %d, want equal", argmin, argmax)
	}
}

func TestRankCandidatesStableTieBreak(t *testing.T) {
	s := New(1, 4)
	s.Scores[0] = []float64{1, 1, 2, 1}
	s.RankCandidates()
	want := []int{2, 0, 1, 3}
	for j, c := range want {
		if s.Ranks[0][j] != c {
			t.Errorf("Ranks[0][%d] = %d, want %d", j, s.Ranks[0][j], c)
		}
	}
}

func TestBreakTieWithPlurality(t *testing.T) {
	s := New(3, 2)
	s.Scores[0] = []float64{5, 1}
	s.Scores[1] = []float64{1, 5}
	s.Scores[2] = []float64{1, 5}

	result := WinnerAndRunnerup{
		Winner:   CandScore{Cand: 0, Score: 10},
		Runnerup: CandScore{Cand: 1, Score: 10},
	}
	got := s.BreakTieWithPlurality(result)
	if got.Winner.Cand != 1 {
		t.Errorf("winner after tiebreak = %d, want 1 (runner-up preferred by 2/3 voters)", got.Winner.Cand)
	}
}
