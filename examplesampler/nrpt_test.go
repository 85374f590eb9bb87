package examplesampler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samplekit/nrpt/sampler"
	"github.com/samplekit/nrpt/tempering"
)

func TestNRPTScenarioThreeReplicaGaussian(t *testing.T) {
	assert := assert.New(t)

	model := &GaussianModel{Mean: []float64{0}, Std: 1.0}
	betas := []float64{1.0, 0.5, 0.0}

	replicas := make([]*tempering.Replica, len(betas))
	for i, b := range betas {
		samp := NewSampler(1, 0.5)
		samp.SetBeta(b)
		replicas[i] = &tempering.Replica{Samp: samp, Beta: b, State: mustInit(samp, model, b)}
	}

	opts := tempering.Options{SwapEvery: 1, NTune: 4, NSample: 8, ChainType: "nrpt-gaussian"}
	result, err := tempering.Run(newRNG(99), model, replicas, opts)
	assert.NoError(err)
	assert.Len(result.Chains, 3)

	for beta, chain := range result.Chains {
		c := chain.(*Chain)
		assert.Len(c.Samples, 8, "beta=%v should have exactly N_sample samples", beta)
	}
	assert.True(result.Diagnostic >= 0)
}

func mustInit(samp *Sampler, model *GaussianModel, beta float64) sampler.State {
	_, state, err := samp.InitialStep(newRNG(1), model)
	if err != nil {
		panic(err)
	}
	return state
}
