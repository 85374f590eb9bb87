package parallel

import (
	"golang.org/x/sync/errgroup"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

// Distributed dispatches one job per chain into a worker-pool abstraction
// and funnels every completion through relay, its single remote channel
// to the progress updater. Each worker receives only a seed - it shares
// nothing with the caller or with other workers, the same isolation a
// worker running in its own process would have; workers here happen to be
// goroutines, but nothing about the contract depends on that.
func Distributed(parent sampler.RNG, model sampler.Model, samp sampler.Sampler, nchains, n int, opts sampler.Options, relay *Relay) ([]sampler.Chain, error) {
	if nchains < 1 {
		return nil, nrpterr.InvalidArgument("nchains must be >= 1, got %d", nchains)
	}

	seeds := drawSeeds(parent, nchains)
	jobs := buildJobs(seeds)
	results := make([]sampler.Chain, nchains)

	group := new(errgroup.Group)
	for _, job := range jobs {
		job := job
		group.Go(func() error {
			rng, err := rand.NewGenerator(job.Seed)
			if err != nil {
				return nrpterr.WorkerFailure(err, "building rng for job %d", job.Index)
			}

			chain, err := sampler.Run(rng, model.Clone(), samp.Clone(), n, opts)
			if err != nil {
				return nrpterr.WorkerFailure(err, "job %d", job.Index)
			}
			results[job.Index] = chain

			if relay != nil {
				relay.Send(Ping{ChainIndex: job.Index, Fraction: 1.0})
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
