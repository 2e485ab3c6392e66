package tracker

import (
	"math/rand"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/freeeve/votesim/pkg/votesim/sim"
	"github.com/freeeve/votesim/pkg/votesim/voting"
)

func TestMeanSDCombineMatchesSinglePass(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	var whole MeanSD
	for _, x := range samples {
		whole.Update(x)
	}

	var a, b MeanSD
	for _, x := range samples[:3] {
		a.Update(x)
	}
	for _, x := range samples[3:] {
		b.Update(x)
	}
	a.Combine(&b)

	const tol = 1e-9
	if d := a.Mean() - whole.Mean(); d < -tol || d > tol {
		t.Errorf("combined mean = %v, want %v", a.Mean(), whole.Mean())
	}
	if d := a.SampleStdDev() - whole.SampleStdDev(); d < -tol || d > tol {
		t.Errorf("combined stddev = %v, want %v", a.SampleStdDev(), whole.SampleStdDev())
	}
}

func TestMethodTrackerRecordsRegretAndWinnerRank(t *testing.T) {
	s := sim.New(5, 4)
	s.Scores = [][]float64{
		{4, 3, 2, 1},
		{1, 4, 2, 3},
		{3, 4, 2, 1},
		{3, 2, 1, 4},
		{3, 2, 4, 1},
	}
	s.ComputeRegrets()
	s.RankCandidates()
	s.FindSmithSet()

	rng := rand.New(rand.NewSource(1))
	method := voting.NewPlurality(voting.Honest, 4, rng)
	mt := NewMethodTracker(method, memory.NewGoAllocator(), 10)

	result := mt.Elect(s, nil)
	if result.Winner.Cand < 0 || result.Winner.Cand >= 4 {
		t.Fatalf("winner out of range: %d", result.Winner.Cand)
	}

	report := mt.SendableReport()
	if report.Ntrials != 1 {
		t.Errorf("Ntrials = %d, want 1", report.Ntrials)
	}

	col := mt.Column()
	if col.Len() != 1 {
		t.Errorf("column length = %d, want 1", col.Len())
	}
}

func TestMethodReportCombinePanicsOnNameMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic combining reports for different methods")
		}
	}()
	a := &MethodReport{Name: "Plurality, Honest"}
	b := &MethodReport{Name: "Plurality, Strategic"}
	a.Combine(b)
}
