package sampler

import "github.com/samplekit/nrpt/rand"

// fakeModel/fakeState/fakeSampler give the driver tests a minimal, fully
// deterministic Sampler: NextStep counts up by one, LogDensity tracks the
// counter, Save appends to a plain []int buffer.

type fakeModel struct{ n int }

func (m *fakeModel) Clone() Model { return &fakeModel{n: m.n} }

type fakeState struct{ v int }

func (s fakeState) LogDensity() float64 { return float64(s.v) }

type fakeSampler struct {
	initCalls int
	nextCalls int
	failAfter int // if >0, NextStep fails once nextCalls reaches this
}

func (s *fakeSampler) InitialStep(rng RNG, model Model) (Sample, State, error) {
	s.initCalls++
	return 0, fakeState{v: 0}, nil
}

func (s *fakeSampler) NextStep(rng RNG, model Model, state State) (Sample, State, error) {
	s.nextCalls++
	if s.failAfter > 0 && s.nextCalls >= s.failAfter {
		return nil, nil, errFakeStep
	}
	st := state.(fakeState)
	return st.v + 1, fakeState{v: st.v + 1}, nil
}

func (s *fakeSampler) NewBuffer(sample Sample, model Model, nHint int) (Buffer, error) {
	return make([]int, 0, nHint), nil
}

func (s *fakeSampler) Save(buf Buffer, sample Sample, index int, model Model, nHint int) (Buffer, error) {
	b := buf.([]int)
	return append(b, sample.(int)), nil
}

func (s *fakeSampler) Bundle(buf Buffer, model Model, finalState State, chainType string, stats RunStats, opts Options) (Chain, error) {
	return buf, nil
}

func (s *fakeSampler) Clone() Sampler { return &fakeSampler{} }

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

const errFakeStep = fakeErr("fake step failure")

func newRNG() RNG {
	g, _ := rand.NewGenerator(1)
	return g
}
