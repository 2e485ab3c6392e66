package voting

import "github.com/freeeve/votesim/pkg/votesim/sim"

// CandPair is one unordered candidate pairing with its signed margin (from
// winner's perspective) as used by the pairwise-comparison methods.
type CandPair struct {
	Winner, Loser int
	Margin        int
}

// findCandidatePairoffs builds every candidate pair, oriented from the
// pairwise winner to the loser (a tied pair is oriented from the lower
// index), sorted by descending margin, from the full antisymmetric
// IBeatsJBy table.
func findCandidatePairoffs(s *sim.Sim) []CandPair {
	pairs := make([]CandPair, 0, s.Ncand*(s.Ncand-1)/2)
	for i := 0; i < s.Ncand; i++ {
		for j := i + 1; j < s.Ncand; j++ {
			margin := s.IBeatsJBy[i][j]
			switch {
			case margin >= 0:
				pairs = append(pairs, CandPair{Winner: i, Loser: j, Margin: margin})
			case margin < 0:
				pairs = append(pairs, CandPair{Winner: j, Loser: i, Margin: -margin})
			}
		}
	}
	for a := 1; a < len(pairs); a++ {
		v := pairs[a]
		b := a - 1
		for b >= 0 && pairs[b].Margin < v.Margin {
			pairs[b+1] = pairs[b]
			b--
		}
		pairs[b+1] = v
	}
	return pairs
}

// lockIn adds a winner->loser edge to the locked-in graph, unless doing so
// would create a cycle (in which case the pair is skipped).
func lockIn(locked [][]bool, pair CandPair) {
	if pathExists(locked, pair.Loser, pair.Winner) {
		return
	}
	locked[pair.Winner][pair.Loser] = true
}

func pathExists(locked [][]bool, from, to int) bool {
	if from == to {
		return true
	}
	visited := make([]bool, len(locked))
	var dfs func(n int) bool
	dfs = func(n int) bool {
		if n == to {
			return true
		}
		visited[n] = true
		for next := range locked[n] {
			if locked[n][next] && !visited[next] {
				if dfs(next) {
					return true
				}
			}
		}
		return false
	}
	return dfs(from)
}

// findLockedInWinner returns the candidate with no incoming locked-in edge.
func findLockedInWinner(locked [][]bool) int {
	for cand := range locked {
		beaten := false
		for other := range locked {
			if locked[other][cand] {
				beaten = true
				break
			}
		}
		if !beaten {
			return cand
		}
	}
	return -1
}

// findAnyCondorcetWinner returns the candidate that beats every other
// candidate pairwise, or -1 if none exists.
func findAnyCondorcetWinner(s *sim.Sim) int {
	for cand := 0; cand < s.Ncand; cand++ {
		beats := true
		for other := 0; other < s.Ncand; other++ {
			if other == cand {
				continue
			}
			if s.IBeatsJBy[cand][other] <= 0 {
				beats = false
				break
			}
		}
		if beats {
			return cand
		}
	}
	return -1
}
