package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"loopkit/data"
)

func blobBatch(t *testing.T, samples int) *data.Batch {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	inputs, targets := data.SyntheticBlobs(samples, 4, 3, rng)
	return &data.Batch{Inputs: inputs, Targets: targets}
}

func TestNewLinearValidation(t *testing.T) {
	_, err := NewLinear(0, 3, 0.1)
	assert.Error(t, err)
	_, err = NewLinear(4, 3, 0)
	assert.Error(t, err)

	unit, err := NewLinear(4, 3, 0.1)
	require.NoError(t, err)
	require.NotNil(t, unit)
}

func TestLinearTrainStep(t *testing.T) {
	unit, err := NewLinear(4, 3, 0.5)
	require.NoError(t, err)

	b := blobBatch(t, 30)
	out, err := unit.TrainStep(b)
	require.NoError(t, err)

	assert.Greater(t, out.Loss, 0.0)
	assert.Contains(t, out.LogVars, "loss")
	assert.Contains(t, out.LogVars, "accuracy")
	assert.Equal(t, out.Loss, out.LogVars["loss"])
}

func TestLinearLearns(t *testing.T) {
	unit, err := NewLinear(4, 3, 0.5)
	require.NoError(t, err)

	b := blobBatch(t, 60)
	first, err := unit.TrainStep(b)
	require.NoError(t, err)

	var last *TrainResult
	for i := 0; i < 200; i++ {
		last, err = unit.TrainStep(b)
		require.NoError(t, err)
	}

	// Separable blobs, repeated full-batch steps: loss must drop.
	assert.Less(t, last.Loss, first.Loss)
	assert.Greater(t, last.LogVars["accuracy"], 0.9)
}

func TestLinearPredictShape(t *testing.T) {
	unit, err := NewLinear(4, 3, 0.5)
	require.NoError(t, err)

	b := blobBatch(t, 12)
	preds, err := unit.Predict(b)
	require.NoError(t, err)

	r, c := preds.Dims()
	assert.Equal(t, 12, r)
	assert.Equal(t, 3, c)

	// Rows are probability distributions.
	for i := 0; i < r; i++ {
		sum := mat.Sum(preds.RowView(i))
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestLinearFeatureMismatch(t *testing.T) {
	unit, err := NewLinear(2, 3, 0.5)
	require.NoError(t, err)

	_, err = unit.TrainStep(blobBatch(t, 4))
	assert.Error(t, err)
}

func TestLinearModeTracking(t *testing.T) {
	unit, err := NewLinear(4, 3, 0.5)
	require.NoError(t, err)

	assert.Equal(t, Training, unit.Mode())
	unit.SetMode(Evaluation)
	assert.Equal(t, Evaluation, unit.Mode())
}
