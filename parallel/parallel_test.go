package parallel

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samplekit/nrpt/rand"
	"github.com/samplekit/nrpt/sampler"
)

type fakeModel struct{}

func (fakeModel) Clone() sampler.Model { return fakeModel{} }

type fakeState struct{ v int }

func (s fakeState) LogDensity() float64 { return float64(s.v) }

type fakeSampler struct{}

func (s *fakeSampler) InitialStep(rng sampler.RNG, model sampler.Model) (sampler.Sample, sampler.State, error) {
	return int(rng.Int63() % 1000), fakeState{}, nil
}

func (s *fakeSampler) NextStep(rng sampler.RNG, model sampler.Model, state sampler.State) (sampler.Sample, sampler.State, error) {
	return int(rng.Int63() % 1000), fakeState{}, nil
}

func (s *fakeSampler) NewBuffer(sample sampler.Sample, model sampler.Model, nHint int) (sampler.Buffer, error) {
	return make([]int, 0, nHint), nil
}

func (s *fakeSampler) Save(buf sampler.Buffer, sample sampler.Sample, index int, model sampler.Model, nHint int) (sampler.Buffer, error) {
	return append(buf.([]int), sample.(int)), nil
}

func (s *fakeSampler) Bundle(buf sampler.Buffer, model sampler.Model, finalState sampler.State, chainType string, stats sampler.RunStats, opts sampler.Options) (sampler.Chain, error) {
	return buf, nil
}

func (s *fakeSampler) Clone() sampler.Sampler { return &fakeSampler{} }

func TestThreadedAndSerialProduceIdenticalResults(t *testing.T) {
	assert := assert.New(t)

	parentA, _ := rand.NewGenerator(42)
	parentB, _ := rand.NewGenerator(42)

	threaded, err := Threaded(parentA, fakeModel{}, &fakeSampler{}, 4, 100, sampler.Options{}, nil)
	assert.NoError(err)

	serial, err := Serial(parentB, fakeModel{}, &fakeSampler{}, 4, 100, sampler.Options{})
	assert.NoError(err)

	assert.True(reflect.DeepEqual(threaded, serial), "threaded and serial results must match given identical parent seeds")
}

func TestSeedsAreDrawnBeforeDispatch(t *testing.T) {
	assert := assert.New(t)

	parent, _ := rand.NewGenerator(1)
	seeds := drawSeeds(parent, 4)
	assert.Len(seeds, 4)

	parent2, _ := rand.NewGenerator(1)
	want := make([]int64, 4)
	for i := range want {
		want[i] = parent2.Int63()
	}
	assert.Equal(want, seeds)
}

func TestThreadedRejectsZeroChains(t *testing.T) {
	assert := assert.New(t)

	parent, _ := rand.NewGenerator(1)
	_, err := Threaded(parent, fakeModel{}, &fakeSampler{}, 0, 10, sampler.Options{}, nil)
	assert.Error(err)
}

func TestDistributedProducesOneResultPerChain(t *testing.T) {
	assert := assert.New(t)

	relay := NewRelay(4)
	go relay.Run()
	defer relay.Close()

	parent, _ := rand.NewGenerator(3)
	results, err := Distributed(parent, fakeModel{}, &fakeSampler{}, 4, 20, sampler.Options{}, relay)
	assert.NoError(err)
	assert.Len(results, 4)
	for _, r := range results {
		assert.Len(r.([]int), 20)
	}
}
