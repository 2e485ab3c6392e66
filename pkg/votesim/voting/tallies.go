package voting

import "math/rand"

// Tallies is a per-candidate vote count, reused across trials by the
// owning method to avoid per-trial allocation.
type Tallies []int32

// tallyVotes finds the top two tallies and reports them as a
// WinnerAndRunnerup. A tie for first place is broken by a coin flip; ties
// for runner-up, or three-or-more-way ties for first, are not resolved
// here (the method's own tie stays visible to callers).
func tallyVotes(tallies Tallies, rng *rand.Rand) WinnerAndRunnerup {
	ncand := len(tallies)
	electee, runup := 0, 1
	mostVotes, runupVotes := tallies[0], tallies[1]
	if runupVotes > mostVotes {
		electee, runup = 1, 0
		mostVotes, runupVotes = tallies[1], tallies[0]
	}
	for j := 2; j < ncand; j++ {
		if tallies[j] > mostVotes {
			runup, runupVotes = electee, mostVotes
			electee, mostVotes = j, tallies[j]
		} else if tallies[j] > runupVotes {
			runup, runupVotes = j, tallies[j]
		}
	}
	if mostVotes == runupVotes && rng.Intn(2) == 1 {
		electee, runup = runup, electee
		mostVotes, runupVotes = runupVotes, mostVotes
	}
	return WinnerAndRunnerup{
		Winner:   CandScore{Cand: electee, Score: float64(mostVotes)},
		Runnerup: CandScore{Cand: runup, Score: float64(runupVotes)},
	}
}
