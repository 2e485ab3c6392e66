package orchestrator

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/freeeve/votesim/internal/tracker"
)

// maxTrialsPerJob bounds how many trials one batch runs before its column
// builders are flushed to the collector, so a single slow worker's memory
// footprint stays bounded regardless of the configured trial count.
const maxTrialsPerJob = 500

// batchJob is one contiguous range of trials assigned to a worker, plus
// the RNG seed that worker's Sim(s) and considerations draw from.
type batchJob struct {
	index  int
	trials int
	seed   int64
}

// batchResult is what a worker sends the collector after finishing one
// batchJob: the batch's finished Arrow record and a transport-safe
// snapshot of every method's running statistics.
type batchResult struct {
	record    arrow.Record
	summaries []*tracker.MethodReport
	completed int
}

// partition splits trials across workers chunks, each chunk capped at
// maxTrialsPerJob and the chunk count rounded up to a multiple of
// workers. Chunks left with zero trials (when trials < chunks) are
// dropped, so a small run can yield fewer jobs than workers.
func partition(trials, workers int, seed int64) []batchJob {
	if workers < 1 {
		workers = 1
	}

	chunks := workers
	if byJobSize := ceilDiv(trials, maxTrialsPerJob); byJobSize > chunks {
		chunks = byJobSize
	}
	if rem := chunks % workers; rem != 0 {
		chunks += workers - rem
	}

	base := trials / chunks
	extra := trials % chunks

	jobs := make([]batchJob, 0, chunks)
	for i := 0; i < chunks; i++ {
		n := base
		if i < extra {
			n++
		}
		if n == 0 {
			continue
		}
		jobSeed := int64(0)
		if seed != 0 {
			jobSeed = seed + int64(i)
		}
		jobs = append(jobs, batchJob{index: i, trials: n, seed: jobSeed})
	}
	return jobs
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
