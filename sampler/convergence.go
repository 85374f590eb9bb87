package sampler

import (
	"time"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/progress"
)

// Predicate inspects a chain's buffer so far and reports whether it has
// converged. It is checked after each retained sample is saved, so a true
// result stops the run immediately - the buffer it just saw is the final
// one, and no further NextStep is ever called.
type Predicate func(buf Buffer, index int) (bool, error)

// RunUntilConverged is the convergence driver of spec section 4.C: like
// Run, but stops as soon as isdone reports true instead of at a fixed N.
// MaxN bounds the run if the predicate never fires; it must be >= 1.
func RunUntilConverged(rng RNG, model Model, samp Sampler, maxN int, isdone Predicate, opts Options) (Chain, error) {
	if maxN < 1 {
		return nil, invalidOption("max sample count must be >= 1, got %d", maxN)
	}
	if isdone == nil {
		return nil, invalidOption("convergence predicate must not be nil")
	}
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	sink := progress.Enabled(opts.Progress)
	emitEvery := maxN / 200
	if emitEvery < 1 {
		emitEvery = 1
	}

	start := time.Now()

	sample, state, err := samp.InitialStep(rng, model)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "initial step failed")
	}

	for i := 0; i < opts.DiscardInitial; i++ {
		sample, state, err = samp.NextStep(rng, model, state)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "warm-up step %d failed", i+2)
		}
	}

	if opts.Callback != nil {
		if err := opts.Callback(rng, model, samp, sample, state, 1); err != nil {
			return nil, nrpterr.SamplerFailure(err, "callback failed at index 1")
		}
	}

	buf, err := samp.NewBuffer(sample, model, maxN)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "new_buffer failed")
	}
	buf, err = samp.Save(buf, sample, 1, model, maxN)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "save failed at index 1")
	}

	done, err := isdone(buf, 1)
	if err != nil {
		return nil, nrpterr.WrapNumericFailure(err, "convergence predicate failed at index 1")
	}

	i := 1
	for !done && i < maxN {
		i++
		for k := 0; k < opts.Thinning-1; k++ {
			sample, state, err = samp.NextStep(rng, model, state)
			if err != nil {
				return nil, nrpterr.SamplerFailure(err, "thinning step failed before index %d", i)
			}
		}
		sample, state, err = samp.NextStep(rng, model, state)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "step failed at index %d", i)
		}

		if opts.Callback != nil {
			if err := opts.Callback(rng, model, samp, sample, state, i); err != nil {
				return nil, nrpterr.SamplerFailure(err, "callback failed at index %d", i)
			}
		}

		buf, err = samp.Save(buf, sample, i, model, maxN)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "save failed at index %d", i)
		}

		done, err = isdone(buf, i)
		if err != nil {
			return nil, nrpterr.WrapNumericFailure(err, "convergence predicate failed at index %d", i)
		}

		if sink && (i%emitEvery == 0 || done || i == maxN) {
			progress.Emit(float64(i)/float64(maxN), opts.ProgressName)
		}
	}

	stop := time.Now()
	stats := RunStats{
		Start:    start.UnixNano(),
		Stop:     stop.UnixNano(),
		Duration: stop.Sub(start).Nanoseconds(),
	}

	chain, err := samp.Bundle(buf, model, state, opts.ChainType, stats, opts)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "bundle failed")
	}
	return chain, nil
}
