package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRejectsNLessThanOne(t *testing.T) {
	assert := assert.New(t)

	_, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 0, Options{})
	assert.Error(err)
}

func TestRunExactSampleCountNoDiscardNoThinning(t *testing.T) {
	assert := assert.New(t)

	chain, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 10, Options{})
	assert.NoError(err)
	buf := chain.([]int)
	assert.Len(buf, 10)
	assert.Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, buf)
}

func TestRunDiscardInitialSkipsWarmup(t *testing.T) {
	assert := assert.New(t)

	chain, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 5, Options{DiscardInitial: 3})
	assert.NoError(err)
	buf := chain.([]int)
	assert.Len(buf, 5)
	// 3 warm-up steps consumed before the first retained sample.
	assert.Equal([]int{3, 4, 5, 6, 7}, buf)
}

func TestRunThinningSkipsBetweenRetainedSamples(t *testing.T) {
	assert := assert.New(t)

	chain, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 4, Options{Thinning: 3})
	assert.NoError(err)
	buf := chain.([]int)
	assert.Len(buf, 4)
	assert.Equal([]int{0, 3, 6, 9}, buf)
}

func TestRunSingleSampleBoundary(t *testing.T) {
	assert := assert.New(t)

	chain, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 1, Options{})
	assert.NoError(err)
	buf := chain.([]int)
	assert.Equal([]int{0}, buf)
}

func TestRunRejectsNegativeDiscard(t *testing.T) {
	assert := assert.New(t)

	_, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 5, Options{DiscardInitial: -1})
	assert.Error(err)
}

func TestRunZeroThinningIsNormalizedNotRejected(t *testing.T) {
	assert := assert.New(t)

	// Thinning==0 is "unset", not invalid - normalized() maps it to 1.
	chain, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 3, Options{Thinning: 0})
	assert.NoError(err)
	assert.Len(chain.([]int), 3)
}

func TestRunPropagatesSamplerFailure(t *testing.T) {
	assert := assert.New(t)

	_, err := Run(newRNG(), &fakeModel{}, &fakeSampler{failAfter: 2}, 10, Options{})
	assert.Error(err)
}

func TestRunInvokesCallbackPerRetainedSample(t *testing.T) {
	assert := assert.New(t)

	seen := []int{}
	opts := Options{Callback: func(rng RNG, model Model, samp Sampler, sample Sample, state State, index int) error {
		seen = append(seen, index)
		return nil
	}}

	_, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 4, opts)
	assert.NoError(err)
	assert.Equal([]int{1, 2, 3, 4}, seen)
}

func TestRunCallbackErrorAbortsRun(t *testing.T) {
	assert := assert.New(t)

	opts := Options{Callback: func(rng RNG, model Model, samp Sampler, sample Sample, state State, index int) error {
		if index == 2 {
			return errFakeStep
		}
		return nil
	}}

	_, err := Run(newRNG(), &fakeModel{}, &fakeSampler{}, 10, opts)
	assert.Error(err)
}
