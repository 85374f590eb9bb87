package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorDeterministic(t *testing.T) {
	assert := assert.New(t)

	g1, err := NewGenerator(42)
	assert.NoError(err)
	g2, err := NewGenerator(42)
	assert.NoError(err)

	for i := 0; i < 100; i++ {
		assert.Equal(g1.Int63(), g2.Int63())
	}
}

func TestGeneratorDistinctSeeds(t *testing.T) {
	assert := assert.New(t)

	g1, err := NewGenerator(1)
	assert.NoError(err)
	g2, err := NewGenerator(2)
	assert.NoError(err)

	same := true
	for i := 0; i < 20; i++ {
		if g1.Int63() != g2.Int63() {
			same = false
			break
		}
	}
	assert.False(same, "two different seeds should not produce the same stream")
}

func TestGeneratorReseedIsFullReset(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(7)
	assert.NoError(err)

	first := make([]int64, 10)
	for i := range first {
		first[i] = g.Int63()
	}

	// Burn some draws so in-flight state differs from a fresh seed.
	for i := 0; i < 50; i++ {
		g.Int63()
	}

	g.Seed(7)
	for i := range first {
		assert.Equal(first[i], g.Int63())
	}
}

func TestFloat64Range(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(99)
	assert.NoError(err)

	for i := 0; i < 1000; i++ {
		v := g.Float64()
		assert.True(v >= 0.0 && v < 1.0, "Float64 must be in [0,1), got %v", v)
	}
}

func TestInt63nPowerOfTwo(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(5)
	assert.NoError(err)

	for i := 0; i < 500; i++ {
		v := g.Int63n(32)
		assert.True(v >= 0 && v < 32)
	}
}

func TestInt31nNonPowerOfTwo(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGenerator(5)
	assert.NoError(err)

	for i := 0; i < 500; i++ {
		v := g.Int31n(17)
		assert.True(v >= 0 && v < 17)
	}
}
