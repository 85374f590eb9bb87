package sampler

import (
	"time"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/progress"
)

func invalidOption(format string, args ...interface{}) error {
	return nrpterr.InvalidArgument(format, args...)
}

// Run is the sequential driver of spec section 4.B: one replica, N
// iterations, with discard/thinning/callback support. It fails eagerly
// with InvalidArgument if n<1 or the options are out of range, before any
// sampler call is made.
func Run(rng RNG, model Model, samp Sampler, n int, opts Options) (Chain, error) {
	if n < 1 {
		return nil, invalidOption("sample count N must be >= 1, got %d", n)
	}
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	nTotal := opts.Thinning*(n-1) + opts.DiscardInitial + 1
	progressThreshold := nTotal / 200
	if progressThreshold < 1 {
		progressThreshold = 1
	}
	doneIterations := 0
	lastEmitted := 0
	sink := progress.Enabled(opts.Progress)
	emit := func() {
		doneIterations++
		if !sink {
			return
		}
		if doneIterations-lastEmitted >= progressThreshold || doneIterations == nTotal {
			lastEmitted = doneIterations
			progress.Emit(float64(doneIterations)/float64(nTotal), opts.ProgressName)
		}
	}

	start := time.Now()

	sample, state, err := samp.InitialStep(rng, model)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "initial step failed")
	}
	emit()

	for i := 0; i < opts.DiscardInitial; i++ {
		sample, state, err = samp.NextStep(rng, model, state)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "warm-up step %d failed", i+2)
		}
		emit()
	}

	if opts.Callback != nil {
		if err := opts.Callback(rng, model, samp, sample, state, 1); err != nil {
			return nil, nrpterr.SamplerFailure(err, "callback failed at index 1")
		}
	}

	buf, err := samp.NewBuffer(sample, model, n)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "new_buffer failed")
	}
	buf, err = samp.Save(buf, sample, 1, model, n)
	if err != nil {
		return nil, nrpterr.SamplerFailure(err, "save failed at index 1")
	}

	for i := 2; i <= n; i++ {
		for k := 0; k < opts.Thinning-1; k++ {
			sample, state, err = samp.NextStep(rng, model, state)
			if err != nil {
				return nil, nrpterr.SamplerFailure(err, "thinning step failed before index %d", i)
			}
			emit()
		}
		sample, state, err = samp.NextStep(rng, model, state)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "step failed at index %d", i)
		}
		emit()

		if opts.Callback != nil {
			if err := opts.Callback(rng, model, samp, sample, state, i); err != nil {
				return nil, nrpterr.SamplerFailure(err, "callback failed at index %d", i)
			}
		}

		buf, err = samp.Save(buf, sample, i, model, n)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "save failed at index %d", i)
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
