// Package examplesampler is a minimal, self-contained Sampler
// implementation used both to exercise the driver/NRPT engine in tests
// and as the CLI's demo default: a random-walk Metropolis kernel over an
// isotropic Gaussian target.
package examplesampler

import (
	"math"

	"github.com/samplekit/nrpt/sampler"
)

// GaussianModel is the target distribution: an isotropic Gaussian with
// the given mean and standard deviation, evaluated independently per
// coordinate.
type GaussianModel struct {
	Mean []float64
	Std  float64
}

func (m *GaussianModel) Clone() sampler.Model {
	mean := make([]float64, len(m.Mean))
	copy(mean, m.Mean)
	return &GaussianModel{Mean: mean, Std: m.Std}
}

func (m *GaussianModel) logDensity(x []float64) float64 {
	sum := 0.0
	for i, xi := range x {
		d := xi - m.Mean[i]
		sum += d * d
	}
	return -sum / (2 * m.Std * m.Std)
}

// state holds the kernel's current point and its target log-density at
// the replica's current β. LogDensity satisfies sampler.State.
type state struct {
	x    []float64
	logp float64
}

func (s state) LogDensity() float64 { return s.logp }

// Sampler is a random-walk Metropolis kernel: propose x' = x + U(-step,
// step) per coordinate, accept with probability min(1, exp(β·(logp'-logp))).
// β defaults to 1 (the full target); a tempering controller calls SetBeta
// to pin it to a replica's rung.
type Sampler struct {
	Dim  int
	Step float64
	beta float64

	accepted int
	proposed int
}

// NewSampler returns a Sampler over Dim coordinates with the given
// random-walk step size, β initialized to 1.
func NewSampler(dim int, step float64) *Sampler {
	return &Sampler{Dim: dim, Step: step, beta: 1.0}
}

// SetBeta implements tempering.BetaSampler.
func (s *Sampler) SetBeta(beta float64) { s.beta = beta }

// Beta returns the sampler's current inverse temperature.
func (s *Sampler) Beta() float64 { return s.beta }

// AcceptanceRate reports the empirical accept fraction so far, for
// diagnostics; 0 before any proposal.
func (s *Sampler) AcceptanceRate() float64 {
	if s.proposed == 0 {
		return 0
	}
	return float64(s.accepted) / float64(s.proposed)
}

func (s *Sampler) target(model sampler.Model) *GaussianModel {
	return model.(*GaussianModel)
}

func (s *Sampler) InitialStep(rng sampler.RNG, model sampler.Model) (sampler.Sample, sampler.State, error) {
	x := make([]float64, s.Dim)
	gm := s.target(model)
	st := state{x: x, logp: s.beta * gm.logDensity(x)}
	return append([]float64(nil), x...), st, nil
}

func (s *Sampler) NextStep(rng sampler.RNG, model sampler.Model, prev sampler.State) (sampler.Sample, sampler.State, error) {
	cur := prev.(state)
	gm := s.target(model)

	proposal := make([]float64, s.Dim)
	for i, xi := range cur.x {
		proposal[i] = xi + (2*rng.Float64()-1)*s.Step
	}

	s.proposed++
	propLogp := s.beta * gm.logDensity(proposal)
	logAccept := propLogp - cur.logp
	if logAccept >= 0 || math.Log(rng.Float64()) < logAccept {
		s.accepted++
		return append([]float64(nil), proposal...), state{x: proposal, logp: propLogp}, nil
	}
	return append([]float64(nil), cur.x...), cur, nil
}

// Buffer is the growable per-chain sample container: one []float64 row
// per retained sample, indexed 1-based like the driver contract, but
// stored 0-based internally.
type Buffer struct {
	rows [][]float64
}

func (s *Sampler) NewBuffer(sample sampler.Sample, model sampler.Model, nHint int) (sampler.Buffer, error) {
	return &Buffer{rows: make([][]float64, 0, nHint)}, nil
}

func (s *Sampler) Save(buf sampler.Buffer, sample sampler.Sample, index int, model sampler.Model, nHint int) (sampler.Buffer, error) {
	b := buf.(*Buffer)
	b.rows = append(b.rows, sample.([]float64))
	return b, nil
}

// Chain is the caller-facing bundled result: every retained sample plus
// the run's bookkeeping.
type Chain struct {
	Samples        [][]float64
	Beta           float64
	ChainType      string
	Stats          sampler.RunStats
	AcceptanceRate float64
}

func (s *Sampler) Bundle(buf sampler.Buffer, model sampler.Model, finalState sampler.State, chainType string, stats sampler.RunStats, opts sampler.Options) (sampler.Chain, error) {
	b := buf.(*Buffer)
	return &Chain{
		Samples:        b.rows,
		Beta:           s.beta,
		ChainType:      chainType,
		Stats:          stats,
		AcceptanceRate: s.AcceptanceRate(),
	}, nil
}

func (s *Sampler) Clone() sampler.Sampler {
	return &Sampler{Dim: s.Dim, Step: s.Step, beta: s.beta}
}
