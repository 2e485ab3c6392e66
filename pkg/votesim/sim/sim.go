// Package sim implements the per-election workspace shared by every voting
// method: the voter x candidate utility matrix and everything derived from
// it (rankings, pairwise margins, regrets, the Smith set).
package sim

import (
	"math/rand"
	"sort"
)

// Consideration contributes additively to a utility matrix.
type Consideration interface {
	AddToScores(scores [][]float64, rng *rand.Rand)
	Dim() int
	Name() string
	PushPositions(report func(candidate int, pos []float64), finalCandidates []int)
}

// WinnerAndRunnerup is the outcome of a single-winner election.
type WinnerAndRunnerup struct {
	Winner   CandScore
	Runnerup CandScore
}

// CandScore pairs a candidate index with a method-specific score.
type CandScore struct {
	Cand  int
	Score float64
}

// IsTied reports whether the winner and runner-up scored identically.
func (w WinnerAndRunnerup) IsTied() bool {
	return w.Winner.Score == w.Runnerup.Score
}

// Sim owns one election's utility matrix and every table derived from it.
// A Sim is not safe for concurrent use; each batch worker owns one exclusively.
type Sim struct {
	Ncit  int
	Ncand int

	// Scores[i][j] is voter i's utility for candidate j.
	Scores [][]float64

	// Ranks[i] lists candidates in descending order of Scores[i][*].
	Ranks [][]int

	// IBeatsJBy[i][j] = (#voters preferring i over j) - (#voters preferring j over i).
	IBeatsJBy [][]int

	Regrets      []float64
	CandByRegret []int
	RegretRank   []int

	InSmithSet []bool
}

// New allocates a Sim sized for ncit voters and ncand candidates.
func New(ncit, ncand int) *Sim {
	s := &Sim{Ncit: ncit, Ncand: ncand}
	s.Scores = make([][]float64, ncit)
	for i := range s.Scores {
		s.Scores[i] = make([]float64, ncand)
	}
	s.Ranks = make([][]int, ncit)
	for i := range s.Ranks {
		s.Ranks[i] = make([]int, ncand)
	}
	s.IBeatsJBy = make([][]int, ncand)
	for i := range s.IBeatsJBy {
		s.IBeatsJBy[i] = make([]int, ncand)
	}
	s.Regrets = make([]float64, ncand)
	s.CandByRegret = make([]int, ncand)
	s.RegretRank = make([]int, ncand)
	s.InSmithSet = make([]bool, ncand)
	return s
}

// Election zeroes the utility matrix, runs every consideration, and
// rederives all dependent tables.
func (s *Sim) Election(considerations []Consideration, rng *rand.Rand) {
	for i := range s.Scores {
		row := s.Scores[i]
		for j := range row {
			row[j] = 0
		}
	}
	for _, c := range considerations {
		c.AddToScores(s.Scores, rng)
	}
	s.ComputeRegrets()
	s.RankCandidates()
	s.FindSmithSet()
}

// TakeFromPrimary copies the columns named by winners (in order) from a
// primary Sim's score matrix into this Sim's, then rederives every table.
// len(winners) must equal s.Ncand.
func (s *Sim) TakeFromPrimary(primary *Sim, winners []int) {
	if len(winners) != s.Ncand {
		panic("sim: TakeFromPrimary winner count does not match candidate count")
	}
	for i := 0; i < s.Ncit; i++ {
		for j, cand := range winners {
			s.Scores[i][j] = primary.Scores[i][cand]
		}
	}
	s.ComputeRegrets()
	s.RankCandidates()
	s.FindSmithSet()
}

// ComputeRegrets sums scores column-wise and derives the regret vector and
// the regret-ordered candidate index.
func (s *Sim) ComputeRegrets() {
	totals := make([]float64, s.Ncand)
	for j := 0; j < s.Ncand; j++ {
		sum := 0.0
		for i := 0; i < s.Ncit; i++ {
			sum += s.Scores[i][j]
		}
		totals[j] = sum
	}

	uMax := totals[0]
	uSum := 0.0
	for _, t := range totals {
		if t > uMax {
			uMax = t
		}
		uSum += t
	}
	uAvg := uSum / float64(s.Ncand)

	denom := uMax - uAvg
	for j, t := range totals {
		if denom == 0 {
			s.Regrets[j] = 0
			continue
		}
		s.Regrets[j] = (uMax - t) / denom
	}

	for j := range s.CandByRegret {
		s.CandByRegret[j] = j
	}
	sort.SliceStable(s.CandByRegret, func(a, b int) bool {
		return s.Regrets[s.CandByRegret[a]] < s.Regrets[s.CandByRegret[b]]
	})
	for rank, cand := range s.CandByRegret {
		s.RegretRank[cand] = rank
	}
}

// RankCandidates derives the per-voter descending-score ranking and the
// antisymmetric pairwise margin matrix in a single pass.
func (s *Sim) RankCandidates() {
	for i := range s.IBeatsJBy {
		row := s.IBeatsJBy[i]
		for j := range row {
			row[j] = 0
		}
	}

	for i := 0; i < s.Ncit; i++ {
		row := s.Ranks[i]
		for j := range row {
			row[j] = j
		}
		scores := s.Scores[i]
		sort.SliceStable(row, func(a, b int) bool {
			return scores[row[a]] > scores[row[b]]
		})

		for a := 0; a < s.Ncand; a++ {
			for b := a + 1; b < s.Ncand; b++ {
				ca, cb := row[a], row[b]
				if scores[ca] == scores[cb] {
					continue
				}
				s.IBeatsJBy[ca][cb]++
				s.IBeatsJBy[cb][ca]--
			}
		}
	}
}

// FindSmithSet computes the smallest set of candidates that each pairwise
// beat or tie every candidate outside the set.
func (s *Sim) FindSmithSet() {
	for i := range s.InSmithSet {
		s.InSmithSet[i] = false
	}
	if s.Ncand == 0 {
		return
	}

	bestNonLosses, seed := -1, 0
	for j := 0; j < s.Ncand; j++ {
		nonLosses := 0
		for k := 0; k < s.Ncand; k++ {
			if k != j && s.IBeatsJBy[j][k] >= 0 {
				nonLosses++
			}
		}
		if nonLosses > bestNonLosses {
			bestNonLosses = nonLosses
			seed = j
		}
	}
	s.InSmithSet[seed] = true

	for {
		changed := false
		for j := 0; j < s.Ncand; j++ {
			if s.InSmithSet[j] {
				continue
			}
			for k := 0; k < s.Ncand; k++ {
				if s.InSmithSet[k] && s.IBeatsJBy[j][k] >= 0 {
					s.InSmithSet[j] = true
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}
}

// SmithSetSize returns the number of candidates currently in the Smith set.
func (s *Sim) SmithSetSize() int {
	n := 0
	for _, in := range s.InSmithSet {
		if in {
			n++
		}
	}
	return n
}

// BreakTieWithPlurality resolves a tied result by counting voters who
// strictly prefer the runner-up over the winner, swapping if the runner-up
// wins that plurality sub-contest.
func (s *Sim) BreakTieWithPlurality(result WinnerAndRunnerup) WinnerAndRunnerup {
	if !result.IsTied() {
		return result
	}
	winner, runnerup := result.Winner.Cand, result.Runnerup.Cand
	runnerupVotes := 0
	for i := 0; i < s.Ncit; i++ {
		if s.Scores[i][runnerup] > s.Scores[i][winner] {
			runnerupVotes++
		}
	}
	if runnerupVotes*2 > s.Ncit {
		result.Winner, result.Runnerup = result.Runnerup, result.Winner
	}
	return result
}
