// Package tracker accumulates per-method election outcomes across trials
// into running statistics and an Arrow column of per-trial results.
package tracker

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/freeeve/votesim/pkg/votesim/sim"
	"github.com/freeeve/votesim/pkg/votesim/voting"
)

// MeanSD is a running mean and standard deviation computed with Welford's
// online algorithm, so a batch of trials needs no buffered sample list.
type MeanSD struct {
	n      int64
	mean   float64
	m2     float64
}

// Update folds one new sample into the running statistics.
func (m *MeanSD) Update(x float64) {
	m.n++
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	delta2 := x - m.mean
	m.m2 += delta * delta2
}

// Mean returns the running mean, or 0 if no samples have been seen.
func (m *MeanSD) Mean() float64 { return m.mean }

// SampleStdDev returns the running sample standard deviation.
func (m *MeanSD) SampleStdDev() float64 {
	if m.n < 2 {
		return 0
	}
	return math.Sqrt(m.m2 / float64(m.n-1))
}

// Combine merges another worker's running statistics into this one,
// using Chan et al.'s parallel-variance formula so the result is
// equivalent to having observed both streams' samples in one pass.
func (m *MeanSD) Combine(other *MeanSD) {
	if other.n == 0 {
		return
	}
	if m.n == 0 {
		*m = *other
		return
	}
	n := m.n + other.n
	delta := other.mean - m.mean
	newMean := m.mean + delta*float64(other.n)/float64(n)
	newM2 := m.m2 + other.m2 + delta*delta*float64(m.n)*float64(other.n)/float64(n)
	m.n, m.mean, m.m2 = n, newMean, newM2
}

// MethodTracker runs one voting method across every trial in a batch,
// folding each outcome's regret into running statistics and an Arrow
// column of (winner rank, regret) pairs for the batch's output file.
type MethodTracker struct {
	Method voting.Method

	ntrials        int
	ntrialsSubopt  int
	meanRegret     MeanSD
	meanSuboptRegret MeanSD

	winnerBldr *array.Int32Builder
	regretBldr *array.Float64Builder
}

// NewMethodTracker allocates a tracker for method, sized for up to
// maxTrials rows.
func NewMethodTracker(method voting.Method, mem memory.Allocator, maxTrials int) *MethodTracker {
	winnerBldr := array.NewInt32Builder(mem)
	winnerBldr.Reserve(maxTrials)
	regretBldr := array.NewFloat64Builder(mem)
	regretBldr.Reserve(maxTrials)
	return &MethodTracker{
		Method:     method,
		winnerBldr: winnerBldr,
		regretBldr: regretBldr,
	}
}

// Elect runs the method against s, ties broken by a plurality sub-contest
// over the tied candidates, and records the resulting regret.
func (t *MethodTracker) Elect(s *sim.Sim, honestPrev *voting.WinnerAndRunnerup) voting.WinnerAndRunnerup {
	result := t.Method.Elect(s, honestPrev)
	if result.IsTied() {
		result = fromSimResult(s.BreakTieWithPlurality(toSimResult(result)))
	}

	t.ntrials++
	regret := s.Regrets[result.Winner.Cand]
	t.meanRegret.Update(regret)
	if regret > 0 {
		t.ntrialsSubopt++
		t.meanSuboptRegret.Update(regret)
	}

	t.regretBldr.Append(regret)
	t.winnerBldr.Append(int32(s.RegretRank[result.Winner.Cand]))
	return result
}

// these tiny helpers keep the sim <-> voting WinnerAndRunnerup conversion
// localized to one place, since the two packages intentionally define
// distinct (structurally identical) result types to avoid a sim->voting
// import.
func toSimResult(w voting.WinnerAndRunnerup) sim.WinnerAndRunnerup {
	return sim.WinnerAndRunnerup{
		Winner:   sim.CandScore{Cand: w.Winner.Cand, Score: w.Winner.Score},
		Runnerup: sim.CandScore{Cand: w.Runnerup.Cand, Score: w.Runnerup.Score},
	}
}

func fromSimResult(w sim.WinnerAndRunnerup) voting.WinnerAndRunnerup {
	return voting.WinnerAndRunnerup{
		Winner:   voting.CandScore{Cand: w.Winner.Cand, Score: w.Winner.Score},
		Runnerup: voting.CandScore{Cand: w.Runnerup.Cand, Score: w.Runnerup.Score},
	}
}

// ColumnName is the output column name for this method's tracked results.
func (t *MethodTracker) ColumnName() string { return t.Method.ColumnName() }

// DataType is the Arrow struct type every method column shares.
func DataType() arrow.DataType {
	return arrow.StructOf(
		arrow.Field{Name: "winner", Type: arrow.PrimitiveTypes.Int32},
		arrow.Field{Name: "regret", Type: arrow.PrimitiveTypes.Float64},
	)
}

// Column finishes the builders and returns the batch's Arrow array for
// this method. It must be called at most once per batch.
func (t *MethodTracker) Column() arrow.Array {
	winner := t.winnerBldr.NewInt32Array()
	regret := t.regretBldr.NewFloat64Array()
	fields := []arrow.Field{
		{Name: "winner", Type: arrow.PrimitiveTypes.Int32},
		{Name: "regret", Type: arrow.PrimitiveTypes.Float64},
	}
	return array.NewStructArray([]arrow.Array{winner, regret}, fields)
}

// Report renders a one-line human summary, matching the style emitted
// at the end of a run for each method.
func (t *MethodTracker) Report() string {
	frac := float64(t.ntrialsSubopt) / float64(t.ntrials)
	return fmt.Sprintf("Method %s: Avg Regret: %v, sigma: %v, Frac suboptimal winner: %v, avg subopt regret: %v",
		t.Method.Name(), t.meanRegret.Mean(), t.meanRegret.SampleStdDev(), frac, t.meanSuboptRegret.Mean())
}

// SendableReport snapshots this tracker's running statistics so they can
// be merged across workers without sharing the tracker itself.
func (t *MethodTracker) SendableReport() *MethodReport {
	return &MethodReport{
		Name:             t.Method.Name(),
		Ntrials:          t.ntrials,
		NtrialsSubopt:    t.ntrialsSubopt,
		MeanRegret:       t.meanRegret,
		MeanSuboptRegret: t.meanSuboptRegret,
	}
}

// MethodReport is a cross-worker-mergeable snapshot of one method's
// running statistics.
type MethodReport struct {
	Name             string
	Ntrials          int
	NtrialsSubopt    int
	MeanRegret       MeanSD
	MeanSuboptRegret MeanSD
}

// Combine merges other's counts into r. Panics if the reports are for
// different methods, since combining across methods is always a bug.
func (r *MethodReport) Combine(other *MethodReport) {
	if r.Name != other.Name {
		panic(fmt.Sprintf("cannot combine reports for different methods: %q vs %q", r.Name, other.Name))
	}
	r.Ntrials += other.Ntrials
	r.NtrialsSubopt += other.NtrialsSubopt
	r.MeanRegret.Combine(&other.MeanRegret)
	r.MeanSuboptRegret.Combine(&other.MeanSuboptRegret)
}

// Report renders the final cross-worker summary line for this method.
func (r *MethodReport) Report() string {
	frac := float64(r.NtrialsSubopt) / float64(r.Ntrials)
	return fmt.Sprintf("Method %s: Avg Regret: %v, sigma: %v, Frac suboptimal winner: %v, avg subopt regret: %v, %d elections",
		r.Name, r.MeanRegret.Mean(), r.MeanRegret.SampleStdDev(), frac, r.MeanSuboptRegret.Mean(), r.Ntrials)
}
