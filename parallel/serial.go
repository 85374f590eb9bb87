package parallel

import (
	"fmt"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

// Serial runs nchains independent sequential-driver chains one after
// another in the calling goroutine, annotating each chain's progress name
// with its index. Given the same parent seed, its per-chain seeds - and
// therefore its per-chain results - match Threaded's exactly.
func Serial(parent sampler.RNG, model sampler.Model, samp sampler.Sampler, nchains, n int, opts sampler.Options) ([]sampler.Chain, error) {
	if nchains < 1 {
		return nil, nrpterr.InvalidArgument("nchains must be >= 1, got %d", nchains)
	}

	seeds := drawSeeds(parent, nchains)
	results := make([]sampler.Chain, nchains)

	for i, seed := range seeds {
		rng, err := rand.NewGenerator(seed)
		if err != nil {
			return nil, nrpterr.WorkerFailure(err, "building rng for chain %d", i)
		}

		chainOpts := opts
		chainOpts.ProgressName = fmt.Sprintf("%s-chain-%d", opts.ProgressName, i)

		chain, err := sampler.Run(rng, model.Clone(), samp.Clone(), n, chainOpts)
		if err != nil {
			return nil, nrpterr.WorkerFailure(err, "chain %d", i)
		}
		results[i] = chain
	}

	return results, nil
}
