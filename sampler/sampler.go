// Package sampler defines the abstractions the driver and the NRPT engine
// are polymorphic over - a model, an RNG, and a five-operation sampler
// contract plus Clone - and the sequential and convergence drivers that run a single
// chain against that contract.
package sampler

// RNG is the randomness source a Sampler and a driver share. Seed resets
// the stream from a 64-bit integer; Int63/Float64 draw from it. A Sampler
// implementation is free to ignore RNG and consume model-provided
// randomness instead, but the driver never draws from anything else.
type RNG interface {
	Seed(seed int64)
	Int63() int64
	Float64() float64
}

// Model is opaque to the driver - the Sampler is entirely responsible for
// evaluating it. The only driver-level requirement is that it can be
// deep-copied, since independent chains and replicas must not share model
// state.
type Model interface {
	Clone() Model
}

// State is a Sampler's per-chain working state, opaque to the driver
// except for the one observable the swap engine needs: the current
// log-density at the replica's point.
type State interface {
	LogDensity() float64
}

// Sample is whatever one step produces and one save consumes. Opaque to
// the driver.
type Sample interface{}

// Buffer is the append-only, per-chain container a Sampler builds up
// across Save calls. Opaque to the driver.
type Buffer interface{}

// Chain is whatever Bundle produces: the finished, caller-facing result of
// a run. Opaque to the driver.
type Chain interface{}

// RunStats is threaded through to Bundle so post-processing can report
// wall-clock cost without the Sampler having to time itself.
type RunStats struct {
	Start    int64 // unix nanos
	Stop     int64 // unix nanos
	Duration int64 // nanoseconds, Stop-Start
}

// Callback is invoked once per retained sample. A non-nil error from a
// callback is fatal to the run - the tempering semantics and the driver
// contract both forbid silently skipping a step.
type Callback func(rng RNG, model Model, samp Sampler, sample Sample, state State, index int) error

// Options configures a driver run. Thinning and DiscardInitial follow
// spec section 6; Progress/ProgressName feed the progress sink.
type Options struct {
	DiscardInitial int
	Thinning       int
	Callback       Callback
	Progress       *bool // nil means "use the process-wide default"
	ProgressName   string
	ChainType      string
}

// normalized returns a copy of opts with defaults applied, or an error if
// an explicit value is out of range.
func (o Options) normalized() (Options, error) {
	out := o
	if out.Thinning == 0 {
		out.Thinning = 1
	}
	if out.DiscardInitial < 0 {
		return out, invalidOption("discard_initial must be >= 0, got %d", out.DiscardInitial)
	}
	if out.Thinning < 1 {
		return out, invalidOption("thinning must be >= 1, got %d", out.Thinning)
	}
	return out, nil
}

// Sampler is the contract every concrete kernel satisfies - section 4.A.
// InitialStep counts as the first iteration for warm-up purposes; NextStep
// produces every iteration after. NewBuffer/Save build the per-chain
// sample container; Bundle turns it into the caller-facing Chain after the
// run completes. Clone returns a deep, independent copy suitable for
// handing to a parallel worker or a tempering replica - states are never
// shared across the copies a Clone produces.
type Sampler interface {
	InitialStep(rng RNG, model Model) (Sample, State, error)
	NextStep(rng RNG, model Model, state State) (Sample, State, error)
	NewBuffer(sample Sample, model Model, nHint int) (Buffer, error)
	Save(buf Buffer, sample Sample, index int, model Model, nHint int) (Buffer, error)
	Bundle(buf Buffer, model Model, finalState State, chainType string, stats RunStats, opts Options) (Chain, error)
	Clone() Sampler
}
