package orchestrator

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/votesim/internal/manifest"
	"github.com/freeeve/votesim/internal/output"
	"github.com/freeeve/votesim/internal/tracker"
)

// collect drains results until the channel is closed, writing each batch
// to the output sink and merging its method summaries into a running,
// order-independent aggregate. It is the only goroutine that touches the
// output file or the progress hub.
func (o *Orchestrator) collect(results <-chan batchResult, schema *arrow.Schema, configYAML []byte, totalTrials int) ([]*tracker.MethodReport, error) {
	var writer *output.Writer
	var aggregate []*tracker.MethodReport
	completed := 0

	defer func() {
		if writer != nil {
			writer.Close()
		}
	}()

	fail := func(err error) ([]*tracker.MethodReport, error) {
		go drain(results)
		return nil, err
	}

	for result := range results {
		if writer == nil {
			w, err := output.Open(o.cfg.OutputPath, schema, map[string]string{
				"votesim.config": string(configYAML),
			})
			if err != nil {
				result.record.Release()
				return fail(fmt.Errorf("opening output file: %w", err))
			}
			writer = w
			aggregate = make([]*tracker.MethodReport, len(result.summaries))
			for i, s := range result.summaries {
				clone := *s
				aggregate[i] = &clone
			}
		} else {
			for i, s := range result.summaries {
				aggregate[i].Combine(s)
			}
		}

		if err := writer.WriteBatch(result.record); err != nil {
			result.record.Release()
			return fail(fmt.Errorf("writing batch: %w", err))
		}
		result.record.Release()

		completed += result.completed
		if o.progress != nil {
			o.progress.Publish(completed, totalTrials)
		}
		log.Info().Int("completed", completed).Int("total", totalTrials).Msg("batch written")
	}

	for _, r := range aggregate {
		log.Info().Msg(r.Report())
	}

	return aggregate, nil
}

// drain discards remaining results so producing workers never block on a
// full channel after the collector has given up because of an earlier
// error.
func drain(results <-chan batchResult) {
	for result := range results {
		result.record.Release()
	}
}

// writeManifest signs and writes the run manifest, when configured.
func (o *Orchestrator) writeManifest(configYAML []byte, trials int, start, end time.Time, aggregate []*tracker.MethodReport) error {
	if o.cfg.ManifestPath == "" || o.cfg.ManifestSigningKey == "" {
		return nil
	}
	signer := manifest.NewSigner(o.cfg.ManifestSigningKey)
	hash := manifest.ConfigHash(configYAML)
	if err := manifest.WriteFile(o.cfg.ManifestPath, signer, hash, trials, start, end, aggregate); err != nil {
		return fmt.Errorf("writing run manifest: %w", err)
	}
	return nil
}
