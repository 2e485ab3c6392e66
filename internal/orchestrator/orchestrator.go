// Package orchestrator partitions a run's trial count across worker
// goroutines, runs each worker's batches independently against its own
// Sim and method instances, and merges per-batch results at a single
// collector goroutine.
package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/votesim/internal/config"
	"github.com/freeeve/votesim/internal/output"
	"github.com/freeeve/votesim/internal/progress"
)

// Orchestrator runs one configured simulation from start to finish:
// partitioning trials, running batches, and writing the aggregated
// output and (optionally) a signed run manifest.
type Orchestrator struct {
	cfg      *config.Config
	progress *progress.Hub
}

// New returns an Orchestrator for cfg. hub may be nil when no live
// progress broadcast is configured.
func New(cfg *config.Config, hub *progress.Hub) *Orchestrator {
	return &Orchestrator{cfg: cfg, progress: hub}
}

// Run partitions cfg.Trials across worker goroutines, runs every batch,
// writes the columnar output file, and (if configured) signs a run
// manifest. ctx carries OS signal cancellation: workers stop pulling new
// chunks once ctx is done, but a batch already in flight always runs to
// completion.
func (o *Orchestrator) Run(ctx context.Context) error {
	start := time.Now()

	workers := o.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := partition(o.cfg.Trials, workers, o.cfg.Seed)
	log.Info().Int("workers", workers).Int("chunks", len(jobs)).Int("trials", o.cfg.Trials).Msg("starting run")

	schema, err := o.buildSchema()
	if err != nil {
		return fmt.Errorf("building output schema: %w", err)
	}

	configYAML, err := o.cfg.CanonicalYAML()
	if err != nil {
		return fmt.Errorf("canonicalizing configuration: %w", err)
	}

	workerCtx, abort := context.WithCancel(ctx)
	defer abort()

	queue := make(chan batchJob, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	results := make(chan batchResult, workers)
	errCh := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, queue, results, errCh, &wg)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	aggregate, collectErr := o.collect(results, schema, configYAML, o.cfg.Trials)

	var workerErr error
	select {
	case workerErr = <-errCh:
		abort()
	default:
	}

	if collectErr != nil {
		return collectErr
	}
	if workerErr != nil {
		return workerErr
	}

	end := time.Now()
	if err := o.writeManifest(configYAML, o.cfg.Trials, start, end, aggregate); err != nil {
		return err
	}

	log.Info().Dur("elapsed", end.Sub(start)).Msg("run complete")
	return nil
}

// buildSchema determines the output schema from throwaway consideration
// and method instances built once from cfg, since Name()/ColumnName()
// and consideration Dim() depend only on configuration, not on any
// trial's data.
func (o *Orchestrator) buildSchema() (*arrow.Schema, error) {
	considerations, err := buildConsiderations(o.cfg)
	if err != nil {
		return nil, err
	}

	ncand := o.cfg.Candidates
	rng := rand.New(rand.NewSource(1))
	methodNames := make([]string, len(o.cfg.Methods))
	for i := range o.cfg.Methods {
		m, err := o.cfg.Methods[i].Build(ncand, rng)
		if err != nil {
			return nil, fmt.Errorf("building method %d: %w", i, err)
		}
		methodNames[i] = m.ColumnName()
	}

	return output.Schema(ncand, considerations, methodNames), nil
}
