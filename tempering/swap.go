// Package tempering implements the Non-Reversible Parallel Tempering
// engine: the swap engine, the monotone-spline ladder adaptor, and the
// controller that drives a replica vector through TUNE, SAMPLE, and DONE.
package tempering

import (
	"math"

	"github.com/samplekit/nrpt/nrpterr"
	"github.com/samplekit/nrpt/sampler"
)

// BetaSampler is the contract a replica's kernel must satisfy beyond the
// plain sampler.Sampler contract: a way to push an updated inverse
// temperature into its own density evaluation. The controller never shares
// β storage across replicas - each SetBeta call targets exactly one
// replica's own sampler instance.
type BetaSampler interface {
	sampler.Sampler
	SetBeta(beta float64)
}

// Replica is one sampler instance pinned to one inverse temperature. The
// replica vector's slot ordering never changes across a run; only Beta (and
// the matching push into Samp) moves when a swap is accepted.
type Replica struct {
	Samp       BetaSampler
	State      sampler.State
	Beta       float64
	lastSample sampler.Sample
}

func (r *Replica) logDensity() float64 {
	return r.State.LogDensity()
}

// SweepDEO runs one deterministic even/odd swap sweep over adjacent
// replica pairs. parity selects which 1-based pair indices attempt an
// exchange this sweep - 1 for odd, 2 for even - while every pair's
// rejection contribution is accumulated into rej regardless of parity.
// rej must have length len(replicas)-1.
func SweepDEO(rng sampler.RNG, replicas []*Replica, parity int, rej []float64) error {
	n := len(replicas)
	if n < 2 {
		return nil
	}
	if len(rej) != n-1 {
		return nrpterr.InvalidArgument("rejection accumulator length %d != %d", len(rej), n-1)
	}

	for i := 0; i < n-1; i++ {
		left, right := replicas[i], replicas[i+1]
		dBeta := left.Beta - right.Beta
		dLog := left.logDensity() - right.logDensity()
		logAlpha := dBeta * dLog

		rejTerm := 1 - math.Min(1, math.Exp(-math.Abs(dBeta)*dLog))
		if math.IsNaN(rejTerm) {
			return nrpterr.NumericFailure("rejection term is NaN at pair %d", i)
		}
		rej[i] += rejTerm

		pairIndex := i + 1 // 1-based, matching the spec's pair numbering
		if pairIndex%2 != parity%2 {
			continue
		}

		u := rng.Float64()
		if math.Log(1-u) <= logAlpha {
			left.Beta, right.Beta = right.Beta, left.Beta
			left.Samp.SetBeta(left.Beta)
			right.Samp.SetBeta(right.Beta)
		}
	}

	return nil
}
