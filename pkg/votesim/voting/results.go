// Package voting implements the library of single- and multi-winner voting
// methods that run against a sim.Sim's derived tables.
package voting

import "github.com/freeeve/votesim/pkg/votesim/sim"

// CandScore pairs a candidate index with a method-specific score (vote
// count, minimum margin, weighted sum, ...).
type CandScore struct {
	Cand  int
	Score float64
}

// WinnerAndRunnerup is the outcome of a single-winner election.
type WinnerAndRunnerup struct {
	Winner   CandScore
	Runnerup CandScore
}

// IsTied reports whether the winner and runner-up scored identically.
func (w WinnerAndRunnerup) IsTied() bool {
	return w.Winner.Score == w.Runnerup.Score
}

// Strategy selects whether a method's ballots are honest or strategically
// cast using a preceding honest poll of the same method family.
type Strategy int

const (
	Honest Strategy = iota
	Strategic
)

func (s Strategy) String() string {
	if s == Strategic {
		return "Strategic"
	}
	return "Honest"
}

// Method is the contract every single-winner voting method implements.
type Method interface {
	// Elect runs the method against sim. honestPrev is the honest result
	// from this same method family at the current trial; it is nil for
	// Honest methods and for the first call of a Strategic method's family.
	Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup
	Name() string
	ColumnName() string
	Strat() Strategy
}

// MultiWinnerMethod is the contract every multi-winner method implements.
type MultiWinnerMethod interface {
	MultiElect(s *sim.Sim, nwinners int) []CandScore
}
