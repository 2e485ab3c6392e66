package voting

import (
	"fmt"
	"math/rand"

	"github.com/freeeve/votesim/pkg/votesim/sim"
)

// Plurality is First Past the Post: honest voters vote for their favorite;
// strategic voters limit their choice to one of the two front-runners
// identified by a preceding honest poll of this same method.
type Plurality struct {
	Strat_ Strategy

	rng     *rand.Rand
	tallies Tallies
}

// NewPlurality returns a Plurality method owned by one batch worker's rng.
func NewPlurality(strat Strategy, ncand int, rng *rand.Rand) *Plurality {
	return &Plurality{Strat_: strat, rng: rng, tallies: make(Tallies, ncand)}
}

func (p *Plurality) Elect(s *sim.Sim, honestPrev *WinnerAndRunnerup) WinnerAndRunnerup {
	for i := range p.tallies {
		p.tallies[i] = 0
	}
	switch p.Strat_ {
	case Honest:
		for i := 0; i < s.Ncit; i++ {
			p.tallies[s.Ranks[i][0]]++
		}
	case Strategic:
		prePoll := honestPrev
		if prePoll == nil {
			h := p.electHonest(s)
			prePoll = &h
		}
		for i := 0; i < s.Ncit; i++ {
			for rank := 0; rank < s.Ncand; rank++ {
				icand := s.Ranks[i][rank]
				if icand == prePoll.Winner.Cand || icand == prePoll.Runnerup.Cand {
					p.tallies[icand]++
					break
				}
			}
		}
	}
	return tallyVotes(p.tallies, p.rng)
}

func (p *Plurality) electHonest(s *sim.Sim) WinnerAndRunnerup {
	saved := p.Strat_
	p.Strat_ = Honest
	result := p.Elect(s, nil)
	p.Strat_ = saved
	return result
}

func (p *Plurality) Name() string { return fmt.Sprintf("Plurality, %s", p.Strat_) }

func (p *Plurality) ColumnName() string {
	if p.Strat_ == Honest {
		return "pl_h"
	}
	return "pl_s"
}

func (p *Plurality) Strat() Strategy { return p.Strat_ }
