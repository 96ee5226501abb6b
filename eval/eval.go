// Package eval accumulates per-batch predictions and finalizes named
// metrics for a completed validation or test pass.
package eval

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"loopkit/data"
)

// Evaluator is the accumulate-then-finalize contract. Evaluate must reset
// accumulation state so that successive passes do not see each other.
type Evaluator interface {
	Process(b *data.Batch, preds *mat.Dense)
	Evaluate(size int) (map[string]float64, error)
}

// Metrics computes classification accuracy and mean negative log
// likelihood from softmax predictions.
type Metrics struct {
	correct int
	nlls    []float64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Process accumulates one batch of predictions against its targets.
func (m *Metrics) Process(b *data.Batch, preds *mat.Dense) {
	n := b.Size()
	for i := 0; i < n; i++ {
		truth := floats.MaxIdx(mat.Row(nil, i, b.Targets))
		if floats.MaxIdx(mat.Row(nil, i, preds)) == truth {
			m.correct++
		}
		p := preds.At(i, truth)
		if p < 1e-12 {
			p = 1e-12
		}
		m.nlls = append(m.nlls, -math.Log(p))
	}
}

// Evaluate finalizes the pass. size is the dataset sample count used for
// accuracy normalization; accumulation state is cleared before returning.
func (m *Metrics) Evaluate(size int) (map[string]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("dataset size must be positive, got %d", size)
	}

	metrics := map[string]float64{
		"accuracy": float64(m.correct) / float64(size),
	}
	if len(m.nlls) > 0 {
		metrics["nll"] = stat.Mean(m.nlls, nil)
	} else {
		metrics["nll"] = 0
	}

	m.correct = 0
	m.nlls = m.nlls[:0]

	return metrics, nil
}
