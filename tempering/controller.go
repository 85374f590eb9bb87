package tempering

import (
	"math"
	"time"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/progress"
	"github.com/samplekit/nrpt/sampler"
)

// Options configures one NRPT run - the N_tune/N_sample/swap_every trio
// from section 6, plus an optional per-iteration callback for observing
// the replica vector mid-run.
type Options struct {
	SwapEvery int
	NTune     int
	NSample   int
	ChainType string
	Progress  *bool
	Callback  func(replicas []*Replica, phase string, iteration int) error
}

func (o Options) normalized() (Options, error) {
	out := o
	if out.SwapEvery == 0 {
		out.SwapEvery = 1
	}
	if out.SwapEvery < 1 {
		return out, nrpterr.InvalidArgument("swap_every must be >= 1, got %d", out.SwapEvery)
	}
	if out.NTune < 2 {
		return out, nrpterr.InvalidArgument("N_tune must be >= 2, got %d", out.NTune)
	}
	if out.NSample < 1 {
		return out, nrpterr.InvalidArgument("N_sample must be >= 1, got %d", out.NSample)
	}
	return out, nil
}

// Result is the outcome of a full TUNE+SAMPLE+DONE run.
type Result struct {
	Chains      map[float64]sampler.Chain
	FinalLadder []float64
	Diagnostic  float64 // 2*Lambda(1) reported at the TUNE->SAMPLE transition
	Stats       sampler.RunStats
}

type bufferEntry struct {
	buf       sampler.Buffer
	builder   BetaSampler
	count     int
	lastState sampler.State
}

// Run drives replicas through TUNE, then SAMPLE, then DONE. The replica
// vector's slot ordering is fixed for the whole call; only each replica's
// Beta field (and the matching push into its Samp) ever moves. model is
// handed through unmodified to every step/save/bundle call - the
// controller never evaluates it itself.
func Run(rng sampler.RNG, model sampler.Model, replicas []*Replica, opts Options) (*Result, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	n := len(replicas)
	if n < 2 {
		return nil, nrpterr.InvalidArgument("NRPT requires at least 2 replicas, got %d", n)
	}

	start := time.Now()
	parity := 1

	// runPhase executes `iterations` DEO sweeps of local exploration, swap
	// attempts every swap_every-th sweep, accumulates per-pair rejection
	// across the phase, then refreshes the ladder via the ladder adaptor.
	// This is section 4.G's "after each phase, apply 4.F" read literally -
	// rejection accumulation and reset are per phase, not per round.
	runPhase := func(iterations int) (float64, error) {
		rej := make([]float64, n-1)
		swapCount := 0

		for it := 0; it < iterations; it++ {
			for _, r := range replicas {
				sample, state, err := r.Samp.NextStep(rng, model, r.State)
				if err != nil {
					return 0, nrpterr.SamplerFailure(err, "replica local exploration failed")
				}
				r.lastSample = sample
				r.State = state
			}

			if (it+1)%opts.SwapEvery == 0 {
				if err := SweepDEO(rng, replicas, parity, rej); err != nil {
					return 0, err
				}
				swapCount++
				if parity == 1 {
					parity = 2
				} else {
					parity = 1
				}
			}
		}

		if swapCount > 0 {
			for i := range rej {
				rej[i] /= float64(swapCount)
			}
		}

		ladder := make([]float64, n)
		for i, r := range replicas {
			ladder[i] = r.Beta
		}

		lambda, err := BuildLambda(ladder, rej)
		if err != nil {
			return 0, err
		}

		newLadder, err := UpdateLadder(ladder, rej)
		if err != nil {
			return 0, err
		}
		for i, r := range replicas {
			r.Beta = newLadder[i]
			r.Samp.SetBeta(newLadder[i])
		}

		return lambda.Total, nil
	}

	maxRound := int(math.Floor(math.Log2(float64(opts.NTune))))
	sink := progress.Enabled(opts.Progress)

	var lastLambdaTotal float64
	phasesDone, totalPhases := 0, maxRound*(maxRound+1)/2
	for round := 1; round <= maxRound; round++ {
		for phase := 1; phase <= round; phase++ {
			iterations := 1 << (phase - 1)
			total, err := runPhase(iterations)
			if err != nil {
				return nil, err
			}
			lastLambdaTotal = total
			phasesDone++
			if sink {
				progress.Emit(float64(phasesDone)/float64(totalPhases), "nrpt-tune")
			}
			if opts.Callback != nil {
				if err := opts.Callback(replicas, "tune", phasesDone); err != nil {
					return nil, nrpterr.SamplerFailure(err, "tune callback failed at phase %d", phasesDone)
				}
			}
		}
	}

	diagnostic := 2 * lastLambdaTotal

	buffers := make(map[float64]*bufferEntry, n)
	rej := make([]float64, n-1) // unused during SAMPLE, SweepDEO still needs it sized
	for it := 1; it <= opts.NSample; it++ {
		for _, r := range replicas {
			sample, state, err := r.Samp.NextStep(rng, model, r.State)
			if err != nil {
				return nil, nrpterr.SamplerFailure(err, "replica local exploration failed during sample phase")
			}
			r.lastSample = sample
			r.State = state
		}

		if it%opts.SwapEvery == 0 {
			for i := range rej {
				rej[i] = 0
			}
			if err := SweepDEO(rng, replicas, parity, rej); err != nil {
				return nil, err
			}
			if parity == 1 {
				parity = 2
			} else {
				parity = 1
			}
		}

		for _, r := range replicas {
			entry, ok := buffers[r.Beta]
			if !ok {
				buf, err := r.Samp.NewBuffer(r.lastSample, model, opts.NSample)
				if err != nil {
					return nil, nrpterr.SamplerFailure(err, "new_buffer failed for beta=%v", r.Beta)
				}
				entry = &bufferEntry{buf: buf, builder: r.Samp}
				buffers[r.Beta] = entry
			}
			entry.count++
			buf, err := entry.builder.Save(entry.buf, r.lastSample, entry.count, model, opts.NSample)
			if err != nil {
				return nil, nrpterr.SamplerFailure(err, "save failed for beta=%v at index %d", r.Beta, entry.count)
			}
			entry.buf = buf
			entry.lastState = r.State
		}

		if opts.Callback != nil {
			if err := opts.Callback(replicas, "sample", it); err != nil {
				return nil, nrpterr.SamplerFailure(err, "sample callback failed at iteration %d", it)
			}
		}
		if sink {
			progress.Emit(float64(it)/float64(opts.NSample), "nrpt-sample")
		}
	}

	stop := time.Now()
	stats := sampler.RunStats{
		Start:    start.UnixNano(),
		Stop:     stop.UnixNano(),
		Duration: stop.Sub(start).Nanoseconds(),
	}

	chains := make(map[float64]sampler.Chain, len(buffers))
	finalLadder := make([]float64, n)
	for i, r := range replicas {
		finalLadder[i] = r.Beta
	}
	driverOpts := sampler.Options{ChainType: opts.ChainType}
	for beta, entry := range buffers {
		chain, err := entry.builder.Bundle(entry.buf, model, entry.lastState, opts.ChainType, stats, driverOpts)
		if err != nil {
			return nil, nrpterr.SamplerFailure(err, "bundle failed for beta=%v", beta)
		}
		chains[beta] = chain
	}

	return &Result{
		Chains:      chains,
		FinalLadder: finalLadder,
		Diagnostic:  diagnostic,
		Stats:       stats,
	}, nil
}
