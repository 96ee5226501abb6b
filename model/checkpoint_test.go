package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCheckpointRoundtrip(t *testing.T) {
	unit, err := NewLinear(4, 3, 0.5)
	require.NoError(t, err)

	// Train a bit so the weights are not fresh random.
	b := blobBatch(t, 30)
	for i := 0; i < 10; i++ {
		_, err = unit.TrainStep(b)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "ckpt.json")
	require.NoError(t, unit.Save(path))

	restored, err := LoadLinear(path)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(unit.weights, restored.weights, 1e-15))
	assert.Equal(t, unit.learningRate, restored.learningRate)

	// Predictions from the restored unit match.
	want, err := unit.Predict(b)
	require.NoError(t, err)
	got, err := restored.Predict(b)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, got, 1e-15))
}

func TestLoadLinearRejectsCorruptCheckpoints(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadLinear(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o644))
	_, err = LoadLinear(bad)
	assert.Error(t, err)

	truncated := filepath.Join(dir, "truncated.json")
	require.NoError(t, os.WriteFile(truncated,
		[]byte(`{"version":"1.0","features":4,"classes":3,"learningRate":0.5,"weights":[1,2]}`), 0o644))
	_, err = LoadLinear(truncated)
	assert.Error(t, err)
}
