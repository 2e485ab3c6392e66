package orchestrator

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
	"strings"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/freeeve/votesim/internal/config"
	"github.com/freeeve/votesim/internal/output"
	"github.com/freeeve/votesim/internal/tracker"
	"github.com/freeeve/votesim/pkg/votesim/consideration"
	"github.com/freeeve/votesim/pkg/votesim/sim"
	"github.com/freeeve/votesim/pkg/votesim/voting"
)

// worker ranges over queue until it is closed or ctx is cancelled, running
// each batchJob to completion (a batch in flight is never cut short) and
// sending its result to results. A panic inside one batch is recovered and
// reported on errCh without crashing the other workers.
func (o *Orchestrator) worker(ctx context.Context, queue <-chan batchJob, results chan<- batchResult, errCh chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range queue {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result, err := o.runBatch(job)
		if err != nil {
			errCh <- err
			return
		}
		results <- result
	}
}

// newRNG seeds a per-batch RNG from seed, or from crypto-random entropy
// when seed is 0 (the configured-base-seed-is-zero / non-deterministic
// case).
func newRNG(seed int64) *mrand.Rand {
	if seed == 0 {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("orchestrator: reading crypto-random seed: %v", err))
		}
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return mrand.New(mrand.NewSource(seed))
}

// runBatch builds one worker's private considerations, methods, and Sim(s)
// from the shared decoded configuration, then runs job.trials elections
// sequentially, appending each trial's row to the batch's column builders.
func (o *Orchestrator) runBatch(job batchJob) (result batchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("orchestrator: batch %d panicked: %v", job.index, r)
		}
	}()

	rng := newRNG(job.seed)
	cfg := o.cfg

	considerations, err := buildConsiderations(cfg)
	if err != nil {
		return batchResult{}, err
	}
	simConsiderations := make([]sim.Consideration, len(considerations))
	for i, c := range considerations {
		simConsiderations[i] = c
	}

	ncand := cfg.Candidates
	mainSim := sim.New(cfg.Voters, ncand)

	var primarySim *sim.Sim
	var primaryMethod voting.MultiWinnerMethod
	if cfg.PrimaryCandidates != nil {
		primarySim = sim.New(cfg.Voters, *cfg.PrimaryCandidates)
		primaryMethod, err = cfg.PrimaryMethod.Build()
		if err != nil {
			return batchResult{}, fmt.Errorf("building primary method: %w", err)
		}
	}

	methods := make([]voting.Method, len(cfg.Methods))
	for i := range cfg.Methods {
		m, err := cfg.Methods[i].Build(ncand, rng)
		if err != nil {
			return batchResult{}, fmt.Errorf("building method %d: %w", i, err)
		}
		methods[i] = m
	}

	mem := memory.NewGoAllocator()
	trackers := make([]*tracker.MethodTracker, len(methods))
	methodNames := make([]string, len(methods))
	for i, m := range methods {
		trackers[i] = tracker.NewMethodTracker(m, mem, job.trials)
		methodNames[i] = m.ColumnName()
	}

	bb := output.NewBatchBuilder(mem, ncand, considerations, job.trials)

	for trial := 0; trial < job.trials; trial++ {
		var finalSim *sim.Sim
		if primarySim != nil {
			primarySim.Election(simConsiderations, rng)
			primaryWinners := primaryMethod.MultiElect(primarySim, ncand)
			winnerSet := make(map[int]bool, len(primaryWinners))
			for _, w := range primaryWinners {
				winnerSet[w.Cand] = true
			}
			ordered := make([]int, 0, ncand)
			for _, cand := range primarySim.CandByRegret {
				if winnerSet[cand] {
					ordered = append(ordered, cand)
				}
			}
			mainSim.TakeFromPrimary(primarySim, ordered)
			finalSim = mainSim
		} else {
			mainSim.Election(simConsiderations, rng)
			finalSim = mainSim
		}

		cov := finalSim.Covariance()
		bb.Append(finalSim, cov)

		runMethods(trackers, finalSim)
	}

	baseCols, rows := bb.Finish()
	schema := output.Schema(ncand, considerations, methodNames)

	methodCols := make([]arrow.Array, len(trackers))
	summaries := make([]*tracker.MethodReport, len(trackers))
	for i, t := range trackers {
		methodCols[i] = t.Column()
		summaries[i] = t.SendableReport()
	}

	record, err := output.NewRecord(schema, baseCols, rows, methodNames, methodCols)
	if err != nil {
		return batchResult{}, fmt.Errorf("assembling batch record: %w", err)
	}

	return batchResult{record: record, summaries: summaries, completed: rows}, nil
}

// runMethods runs every method in configured order against s, forwarding
// the most recent honest result within each method family to that
// family's strategic call. A family's honest result is consumed at most
// once: after a strategic call, the family's slot is reset to nil so a
// later strategic method in the same family never reuses a stale result.
// A strategic call with no recorded honest result receives nil; strategic
// Plurality then runs its own honest poll, while strategic Range, STAR and
// Borda dereference it and the batch fails with a recovered panic.
func runMethods(trackers []*tracker.MethodTracker, s *sim.Sim) {
	lastHonest := make(map[string]*voting.WinnerAndRunnerup)
	for _, t := range trackers {
		family := familyKey(t.ColumnName())
		var honestPrev *voting.WinnerAndRunnerup
		if t.Method.Strat() == voting.Strategic {
			honestPrev = lastHonest[family]
		}

		result := t.Elect(s, honestPrev)

		if t.Method.Strat() == voting.Strategic {
			lastHonest[family] = nil
		} else {
			r := result
			lastHonest[family] = &r
		}
	}
}

// familyKey groups a method's honest and strategic variants under one
// key, stripping a trailing "_h"/"_s" from the method's ColumnName.
// Methods with no strategic variant (ranked pairs, minimax) keep their
// full column name, which is harmless since they never appear on the
// Strategic side of the lookup. Multivote's names ("multi_h_4v",
// "multi_s_4v") do not end in the suffix, so its two variants fall in
// separate families; strategic Multivote does not read honestPrev.
func familyKey(columnName string) string {
	if strings.HasSuffix(columnName, "_h") || strings.HasSuffix(columnName, "_s") {
		return columnName[:len(columnName)-2]
	}
	return columnName
}

func buildConsiderations(cfg *config.Config) ([]consideration.Consideration, error) {
	considerations := make([]consideration.Consideration, len(cfg.Considerations))
	for i := range cfg.Considerations {
		c, err := cfg.Considerations[i].Build()
		if err != nil {
			return nil, fmt.Errorf("building consideration %d: %w", i, err)
		}
		considerations[i] = c
	}
	return considerations, nil
}
