package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdenticalDistributionsHaveZeroError(t *testing.T) {
	assert := assert.New(t)

	p := []float64{1, 2, 3, 4}

	d, err := MaxAbsDiff(p, p)
	assert.NoError(err)
	assert.InDelta(0, d, 1e-12)

	d, err = MeanAbsDiff(p, p)
	assert.NoError(err)
	assert.InDelta(0, d, 1e-12)

	d, err = HellingerDiff(p, p)
	assert.NoError(err)
	assert.InDelta(0, d, 1e-12)

	d, err = JSDivergence(p, p)
	assert.NoError(err)
	assert.InDelta(0, d, 1e-12)
}

func TestDisjointDistributionsHaveMaximalHellinger(t *testing.T) {
	assert := assert.New(t)

	p := []float64{1, 0}
	q := []float64{0, 1}

	d, err := HellingerDiff(p, q)
	assert.NoError(err)
	assert.InDelta(1.0, d, 1e-9)
}

func TestLengthMismatchErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := MaxAbsDiff([]float64{1, 2}, []float64{1, 2, 3})
	assert.Error(err)
}

func TestNormalizationIsScaleInvariant(t *testing.T) {
	assert := assert.New(t)

	p := []float64{1, 3}
	q := []float64{10, 30}

	d, err := MeanAbsDiff(p, q)
	assert.NoError(err)
	assert.InDelta(0, d, 1e-12)
}

func TestSuiteAggregatesAcrossPairs(t *testing.T) {
	assert := assert.New(t)

	ps := [][]float64{{1, 0}, {1, 1}}
	qs := [][]float64{{0, 1}, {1, 1}}

	s, err := NewSuite(ps, qs)
	assert.NoError(err)
	assert.True(s.MaxHellinger > s.MeanHellinger || s.MaxHellinger == s.MeanHellinger)
	assert.InDelta(0.5, s.MeanHellinger, 1e-9)
}

func TestSuiteRejectsEmptyInput(t *testing.T) {
	assert := assert.New(t)

	_, err := NewSuite(nil, nil)
	assert.Error(err)
}
