package hub

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubHistoryAndLatest(t *testing.T) {
	h := New(nil)

	_, ok := h.Latest("train/loss")
	assert.False(t, ok)

	h.Log("train/loss", 0.9)
	h.Log("train/loss", 0.5)
	h.Log("val/accuracy", 0.8)

	latest, ok := h.Latest("train/loss")
	require.True(t, ok)
	assert.Equal(t, 0.5, latest)

	assert.Equal(t, []float64{0.9, 0.5}, h.History("train/loss"))
	assert.Equal(t, []string{"train/loss", "val/accuracy"}, h.Keys())
}

func TestHubGaugeExport(t *testing.T) {
	registry := prometheus.NewRegistry()
	h := New(registry)

	h.Log("test/accuracy", 0.75)

	g, err := h.scalars.GetMetricWithLabelValues("test/accuracy")
	require.NoError(t, err)
	assert.Equal(t, 0.75, testutil.ToFloat64(g))
}
