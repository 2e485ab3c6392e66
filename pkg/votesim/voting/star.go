package voting

import (
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// STAR (Score Then Automatic Runoff) scores every candidate on a range
// ballot, advances the top two scorers to an automatic runoff, and
// resolves the runoff from each voter's ballot grades: whichever finalist
// a voter graded higher wins that voter's preference in the runoff round.
type STAR struct {
	Strat_                 Strategy
	Nranks                 int32
	StrategicStretchFactor float64

	rng     *rand.Rand
	totals  Tallies
	ballot  Tallies
}

func NewSTAR(strat Strategy, nranks int32, strategicStretchFactor float64, ncand int, rng *rand.Rand) *STAR {
	if strategicStretchFactor == 0 {
		strategicStretchFactor = 4.0
	}
	return &STAR{
		Strat_: strat, Nranks: nranks, StrategicStretchFactor: strategicStretchFactor,
		rng: rng, totals: make(Tallies, ncand), ballot: make(Tallies, ncand),
	}
}

func (m *STAR) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range m.totals {
		m.totals[i] = 0
	}
	ballots := make([]Tallies, s.Ncit)
	for i, vscores := range s.Scores {
		ballot := make(Tallies, s.Ncand)
		switch m.Strat_ {
		case Honest:
			fillRangeBallot(vscores, m.Nranks, ballot)
		case Strategic:
			pre := honestPrev
			scoreBreak := (vscores[pre.Winner.Cand] + vscores[pre.Runnerup.Cand]) / 2.0
			fillRangeBallotStrat(vscores, m.Nranks, ballot, scoreBreak, m.StrategicStretchFactor)
		}
		ballots[i] = ballot
		for icand := range ballot {
			m.totals[icand] += ballot[icand]
		}
	}

	first, second := 0, 1
	if m.totals[1] > m.totals[0] {
		first, second = 1, 0
	}
	for icand := 2; icand < s.Ncand; icand++ {
		if m.totals[icand] > m.totals[first] {
			second = first
			first = icand
		} else if m.totals[icand] > m.totals[second] {
			second = icand
		}
	}

	// Preference counts only strict ballot-grade comparisons; a voter whose
	// ballot grades first and second equally prefers neither.
	firstVotes, secondVotes := 0, 0
	for i := range ballots {
		switch {
		case ballots[i][first] > ballots[i][second]:
			firstVotes++
		case ballots[i][second] > ballots[i][first]:
			secondVotes++
		}
	}

	// A tie in the runoff preference count favors the higher-summed-score
	// finalist (first), matching the reference runoff tie-break.
	winner, runup, winVotes, runVotes := first, second, firstVotes, secondVotes
	if secondVotes > firstVotes {
		winner, runup, winVotes, runVotes = second, first, secondVotes, firstVotes
	}
	return WinnerAndRunnerup{
		Winner:   CandScore{Cand: winner, Score: float64(winVotes)},
		Runnerup: CandScore{Cand: runup, Score: float64(runVotes)},
	}
}

func (m *STAR) Name() string {
	if m.Strat_ == Honest {
		return "STAR, Honest"
	}
	return "STAR, Strategic"
}

func (m *STAR) ColumnName() string {
	if m.Strat_ == Honest {
		return "star_h"
	}
	return "star_s"
}

func (m *STAR) Strat() Strategy { return m.Strat_ }
