package tempering

import (
	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

// fakeState/fakeSampler give the tempering tests a minimal BetaSampler:
// the "log density" is just -beta*x^2, a 1-D Gaussian-shaped
// target scaled by the replica's own beta, which is exactly the kind of
// density a real temperature ladder is meant to flatten.

type fakeState struct {
	x    float64
	beta float64
}

func (s fakeState) LogDensity() float64 {
	return -s.beta * s.x * s.x
}

type fakeSampler struct {
	beta float64
	step float64 // deterministic per-step increment, keeps tests reproducible
}

func (s *fakeSampler) SetBeta(beta float64) { s.beta = beta }

func (s *fakeSampler) InitialStep(rng sampler.RNG, model sampler.Model) (sampler.Sample, sampler.State, error) {
	return 0.0, fakeState{x: 0.0, beta: s.beta}, nil
}

func (s *fakeSampler) NextStep(rng sampler.RNG, model sampler.Model, state sampler.State) (sampler.Sample, sampler.State, error) {
	st := state.(fakeState)
	x := st.x + s.step
	return x, fakeState{x: x, beta: s.beta}, nil
}

func (s *fakeSampler) NewBuffer(sample sampler.Sample, model sampler.Model, nHint int) (sampler.Buffer, error) {
	return make([]float64, 0, nHint), nil
}

func (s *fakeSampler) Save(buf sampler.Buffer, sample sampler.Sample, index int, model sampler.Model, nHint int) (sampler.Buffer, error) {
	b := buf.([]float64)
	return append(b, sample.(float64)), nil
}

func (s *fakeSampler) Bundle(buf sampler.Buffer, model sampler.Model, finalState sampler.State, chainType string, stats sampler.RunStats, opts sampler.Options) (sampler.Chain, error) {
	return buf, nil
}

func (s *fakeSampler) Clone() sampler.Sampler {
	return &fakeSampler{beta: s.beta, step: s.step}
}

type fakeModel struct{}

func (fakeModel) Clone() sampler.Model { return fakeModel{} }

func newReplicas(betas []float64) []*Replica {
	replicas := make([]*Replica, len(betas))
	for i, b := range betas {
		samp := &fakeSampler{beta: b, step: 0.1 * float64(i+1)}
		replicas[i] = &Replica{
			Samp:  samp,
			State: fakeState{x: float64(i), beta: b},
			Beta:  b,
		}
	}
	return replicas
}

func newRNG(seed int64) sampler.RNG {
	g, _ := rand.NewGenerator(seed)
	return g
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

// failingSampler always errors on NextStep, used to exercise the
// controller's error-propagation path.
type failingSampler struct{ beta float64 }

func (s *failingSampler) SetBeta(beta float64) { s.beta = beta }

func (s *failingSampler) InitialStep(rng sampler.RNG, model sampler.Model) (sampler.Sample, sampler.State, error) {
	return 0.0, fakeState{beta: s.beta}, nil
}

func (s *failingSampler) NextStep(rng sampler.RNG, model sampler.Model, state sampler.State) (sampler.Sample, sampler.State, error) {
	return nil, nil, fakeErr("forced local exploration failure")
}

func (s *failingSampler) NewBuffer(sample sampler.Sample, model sampler.Model, nHint int) (sampler.Buffer, error) {
	return make([]float64, 0, nHint), nil
}

func (s *failingSampler) Save(buf sampler.Buffer, sample sampler.Sample, index int, model sampler.Model, nHint int) (sampler.Buffer, error) {
	return buf, nil
}

func (s *failingSampler) Bundle(buf sampler.Buffer, model sampler.Model, finalState sampler.State, chainType string, stats sampler.RunStats, opts sampler.Options) (sampler.Chain, error) {
	return buf, nil
}

func (s *failingSampler) Clone() sampler.Sampler { return &failingSampler{beta: s.beta} }
