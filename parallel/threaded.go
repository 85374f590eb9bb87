package parallel

import (
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

// Threaded runs nchains independent sequential-driver chains over a
// bounded pool of goroutines, sized to min(nchains, hardware threads).
// Each worker owns one deep-copied model and sampler, hands every job a
// fresh clone of those, and builds a private rng per job from its seed, so
// two jobs landing on the same worker never share mutable state. Results slot into
// a fixed-size, disjointly-indexed vector; no locking is needed on the
// hot path.
func Threaded(parent sampler.RNG, model sampler.Model, samp sampler.Sampler, nchains, n int, opts sampler.Options, logger *log.Logger) ([]sampler.Chain, error) {
	if nchains < 1 {
		return nil, nrpterr.InvalidArgument("nchains must be >= 1, got %d", nchains)
	}

	workers := runtime.NumCPU()
	if workers > nchains {
		workers = nchains
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 && logger != nil {
		logger.Printf("parallel: only one worker available for %d chains", nchains)
	}
	if nchains > n && logger != nil {
		logger.Printf("parallel: nchains (%d) exceeds N (%d)", nchains, n)
	}

	seeds := drawSeeds(parent, nchains)
	jobs := buildJobs(seeds)
	results := make([]sampler.Chain, nchains)

	jobCh := make(chan Job, nchains)
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	group := new(errgroup.Group)
	group.SetLimit(workers)

	for w := 0; w < workers; w++ {
		workerID := w
		group.Go(func() error {
			workerModel := model.Clone()
			workerSamp := samp.Clone()

			for job := range jobCh {
				rng, err := rand.NewGenerator(job.Seed)
				if err != nil {
					return nrpterr.WorkerFailure(err, "worker %d: building rng", workerID)
				}

				jobOpts := opts
				jobOpts.ProgressName = fmt.Sprintf("%s-chain-%d", opts.ProgressName, job.Index)

				chain, err := sampler.Run(rng, workerModel.Clone(), workerSamp.Clone(), n, jobOpts)
				if err != nil {
					return nrpterr.WorkerFailure(err, "worker %d: chain %d", workerID, job.Index)
				}
				results[job.Index] = chain
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
