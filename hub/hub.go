// Package hub collects the scalar values loops record during a run.
// Keys are namespaced by regime: train/<name>, val/<name>, test/<name>.
package hub

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Hub is the log-aggregation sink shared by all loops of a run. It keeps
// the full per-key history in logging order and mirrors the latest value
// of every key into a prometheus gauge.
type Hub struct {
	history map[string][]float64
	order   []string
	scalars *prometheus.GaugeVec
}

// New builds a Hub. If registry is non-nil the scalar gauge is registered
// with it; pass nil to keep the hub purely in-memory.
func New(registry prometheus.Registerer) *Hub {
	h := &Hub{
		history: make(map[string][]float64),
		scalars: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "loopkit_logged_scalar",
				Help: "Latest value recorded for each namespaced log key",
			},
			[]string{"key"},
		),
	}
	if registry != nil {
		registry.MustRegister(h.scalars)
	}
	return h
}

// Log appends value to the history of key and updates its gauge.
func (h *Hub) Log(key string, value float64) {
	if _, seen := h.history[key]; !seen {
		h.order = append(h.order, key)
	}
	h.history[key] = append(h.history[key], value)
	h.scalars.WithLabelValues(key).Set(value)
}

// Latest returns the most recent value logged under key.
func (h *Hub) Latest(key string) (float64, bool) {
	vs := h.history[key]
	if len(vs) == 0 {
		return 0, false
	}
	return vs[len(vs)-1], true
}

// History returns every value logged under key, oldest first.
func (h *Hub) History(key string) []float64 {
	return h.history[key]
}

// Keys lists all keys in first-logged order.
func (h *Hub) Keys() []string {
	return append([]string(nil), h.order...)
}
