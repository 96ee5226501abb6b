package runner

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loopkit/model"
)

func TestProgressBindingsValidation(t *testing.T) {
	_, err := ProgressBindings(0)
	assert.Error(t, err)

	bindings, err := ProgressBindings(10)
	require.NoError(t, err)
	assert.Len(t, bindings, 1)
}

func TestCheckpointBindings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ckpts")

	unit, err := model.NewLinear(2, 2, 0.5)
	require.NoError(t, err)

	bindings, err := CheckpointBindings(unit, dir)
	require.NoError(t, err)

	r, err := New(unit, nil, nil, bindings)
	require.NoError(t, err)

	loop, err := NewEpochBasedTrainLoop(r, makeSource(t, 4, 2), 3, nil, 0)
	require.NoError(t, err)
	require.NoError(t, loop.Run())

	for epoch := 1; epoch <= 3; epoch++ {
		path := filepath.Join(dir, "epoch_"+strconv.Itoa(epoch)+".json")
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, path)
	}

	restored, err := model.LoadLinear(filepath.Join(dir, "epoch_3.json"))
	require.NoError(t, err)
	require.NotNil(t, restored)
}

func TestCheckpointBindingsValidation(t *testing.T) {
	_, err := CheckpointBindings(nil, t.TempDir())
	assert.Error(t, err)
}
