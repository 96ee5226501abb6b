package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"loopkit/data"
)

func batchWithPreds(targets, preds []float64, rows, cols int) (*data.Batch, *mat.Dense) {
	b := &data.Batch{
		Inputs:  mat.NewDense(rows, 1, nil),
		Targets: mat.NewDense(rows, cols, targets),
	}
	return b, mat.NewDense(rows, cols, preds)
}

func TestMetricsAccuracy(t *testing.T) {
	m := NewMetrics()

	// Two right, one wrong.
	b, preds := batchWithPreds(
		[]float64{1, 0, 0, 1, 1, 0},
		[]float64{0.9, 0.1, 0.2, 0.8, 0.3, 0.7},
		3, 2)
	m.Process(b, preds)

	metrics, err := m.Evaluate(3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, metrics["accuracy"], 1e-12)
	assert.Greater(t, metrics["nll"], 0.0)
}

func TestMetricsResetBetweenPasses(t *testing.T) {
	m := NewMetrics()

	b, preds := batchWithPreds(
		[]float64{1, 0, 0, 1},
		[]float64{0.9, 0.1, 0.1, 0.9},
		2, 2)

	m.Process(b, preds)
	first, err := m.Evaluate(2)
	require.NoError(t, err)

	// A fresh pass over the same data sees none of the previous state.
	m.Process(b, preds)
	second, err := m.Evaluate(2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, second["accuracy"])
}

func TestMetricsNormalizesBySampleCount(t *testing.T) {
	m := NewMetrics()

	b, preds := batchWithPreds(
		[]float64{1, 0, 0, 1},
		[]float64{0.9, 0.1, 0.1, 0.9},
		2, 2)
	m.Process(b, preds)

	// Dataset size is supplied externally and may exceed what was seen.
	metrics, err := m.Evaluate(4)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, metrics["accuracy"], 1e-12)
}

func TestMetricsRejectsBadSize(t *testing.T) {
	m := NewMetrics()
	_, err := m.Evaluate(0)
	assert.Error(t, err)
}

func TestMetricsEmptyPass(t *testing.T) {
	m := NewMetrics()
	metrics, err := m.Evaluate(5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics["accuracy"])
	assert.Equal(t, 0.0, metrics["nll"])
}
