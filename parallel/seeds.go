// Package parallel fans the sequential driver out across independent
// chains, via three substrates that share one contract: threaded,
// distributed (worker-pool), and serial.
package parallel

import "github.com/samplekit/nrpt/sampler"

// drawSeeds pulls nchains seeds from the parent rng before any dispatch,
// so a given parent seed yields the same per-chain seeds regardless of
// which driver substrate consumes them - the property that lets Threaded
// and Serial runs of the same seed be compared sample-for-sample.
func drawSeeds(parent sampler.RNG, nchains int) []int64 {
	seeds := make([]int64, nchains)
	for i := range seeds {
		seeds[i] = parent.Int63()
	}
	return seeds
}

// Job is one independent chain's work order: its seed and its index into
// the result vector.
type Job struct {
	Index int
	Seed  int64
}

func buildJobs(seeds []int64) []Job {
	jobs := make([]Job, len(seeds))
	for i, s := range seeds {
		jobs[i] = Job{Index: i, Seed: s}
	}
	return jobs
}

// Result is one chain's outcome, tagged with the job it came from so a
// driver can slot it into a fixed-size result vector without needing
// in-order delivery.
type Result struct {
	Index int
	Chain sampler.Chain
	Err   error
}
