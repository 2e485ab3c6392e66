package consideration

import (
	"math"
	"math/rand"
	"testing"
)

func TestLikabilityAddsUniformlyPerCandidate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := NewLikability(2.0)
	scores := [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	l.AddToScores(scores, rng)

	for j := 0; j < 3; j++ {
		want := scores[0][j]
		if want < 0 {
			t.Errorf("likability score for candidate %d is negative: %v", j, want)
		}
		for i := 1; i < 3; i++ {
			if scores[i][j] != want {
				t.Errorf("candidate %d not applied uniformly: row 0 = %v, row %d = %v", j, want, i, scores[i][j])
			}
		}
	}

	var got []int
	l.PushPositions(func(candidate int, pos []float64) {
		got = append(got, candidate)
		if pos[0] != scores[0][candidate] {
			t.Errorf("reported position %v does not match applied score %v", pos[0], scores[0][candidate])
		}
	}, []int{2, 0, 1})
	want := []int{2, 0, 1}
	for i, c := range want {
		if got[i] != c {
			t.Errorf("PushPositions order[%d] = %d, want %d", i, got[i], c)
		}
	}
}

func TestIssuesHorizonClipsDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	horizon := 1.0
	issues := NewIssues([]IssueAxis{{Sigma: 0, Halfcsep: 5, Horizon: horizon}})
	scores := [][]float64{{0, 0}}
	issues.AddToScores(scores, rng)

	for _, s := range scores[0] {
		if s < -horizon-1e-9 {
			t.Errorf("clipped utility %v exceeds -horizon (%v)", s, -horizon)
		}
	}
}

func TestIrrationalNoCampsUsesIndividualTermOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ir := NewIrrational(1.0, 1, 45, false)
	if ir.campScale != 0 {
		t.Errorf("campScale = %v, want 0 when camps <= 1", ir.campScale)
	}
	scores := [][]float64{{0, 0}, {0, 0}}
	ir.AddToScores(scores, rng)
	for _, row := range scores {
		for _, v := range row {
			if v < 0 {
				t.Errorf("irrational score %v negative with non-centered draw", v)
			}
		}
	}
}

func TestIrrationalCenteredDrawCanBeNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ir := NewIrrational(1.0, 1, 0, true)
	sawNegative := false
	for i := 0; i < 200; i++ {
		if ir.draw(rng) < 0 {
			sawNegative = true
			break
		}
	}
	if !sawNegative {
		t.Error("centered draw never produced a negative value across 200 samples")
	}
	if !math.IsNaN(math.NaN()) {
		t.Fatal("sanity check: NaN must not equal itself")
	}
}
