package data

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestInMemorySourceBatching(t *testing.T) {
	inputs := mat.NewDense(10, 3, nil)
	targets := mat.NewDense(10, 2, nil)

	src, err := NewInMemorySource(inputs, targets, 4)
	require.NoError(t, err)

	assert.Equal(t, 3, src.Len())
	assert.Equal(t, 10, src.SampleCount())

	// Last batch is short.
	sizes := []int{4, 4, 2}
	for i, want := range sizes {
		b, err := src.Batch(i)
		require.NoError(t, err)
		assert.Equal(t, want, b.Size())
	}

	_, err = src.Batch(3)
	assert.Error(t, err)
	_, err = src.Batch(-1)
	assert.Error(t, err)
}

func TestInMemorySourceConstructionErrors(t *testing.T) {
	inputs := mat.NewDense(4, 2, nil)
	targets := mat.NewDense(4, 2, nil)

	_, err := NewInMemorySource(nil, targets, 2)
	assert.Error(t, err)

	_, err = NewInMemorySource(inputs, mat.NewDense(3, 2, nil), 2)
	assert.Error(t, err)

	_, err = NewInMemorySource(inputs, targets, 0)
	assert.Error(t, err)
}

func TestCursorExhaustion(t *testing.T) {
	inputs := mat.NewDense(4, 2, nil)
	targets := mat.NewDense(4, 2, nil)
	src, err := NewInMemorySource(inputs, targets, 2)
	require.NoError(t, err)

	c := NewCursor(src)
	for i := 0; i < 2; i++ {
		b, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, 2, b.Size())
	}

	// Exhausted, and stays exhausted.
	_, err = c.Next()
	assert.True(t, errors.Is(err, ErrExhausted))
	_, err = c.Next()
	assert.True(t, errors.Is(err, ErrExhausted))
}

func TestSyntheticBlobs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inputs, targets := SyntheticBlobs(9, 4, 3, rng)

	r, c := inputs.Dims()
	assert.Equal(t, 9, r)
	assert.Equal(t, 4, c)

	tr, tc := targets.Dims()
	assert.Equal(t, 9, tr)
	assert.Equal(t, 3, tc)

	// Targets are one-hot.
	for i := 0; i < tr; i++ {
		sum := 0.0
		for j := 0; j < tc; j++ {
			sum += targets.At(i, j)
		}
		assert.Equal(t, 1.0, sum)
	}
}
