package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"loopkit/data"
)

// Linear is a single-layer softmax classifier trained by mini-batch SGD.
// It is the reference unit used by the demo and the tests; anything
// satisfying Unit can replace it.
type Linear struct {
	weights      *mat.Dense // features x classes
	learningRate float64
	mode         Mode
}

func NewLinear(features, classes int, learningRate float64) (*Linear, error) {
	if features <= 0 || classes <= 0 {
		return nil, fmt.Errorf("features and classes must be positive")
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("learning rate must be positive")
	}
	return &Linear{
		weights:      mat.NewDense(features, classes, randomArray(features*classes, float64(features))),
		learningRate: learningRate,
	}, nil
}

func (l *Linear) SetMode(m Mode) {
	l.mode = m
}

// Mode reports the mode most recently set by a loop.
func (l *Linear) Mode() Mode {
	return l.mode
}

// TrainStep runs forward, cross-entropy loss, and one SGD weight update.
func (l *Linear) TrainStep(b *data.Batch) (*TrainResult, error) {
	probs, err := l.forward(b)
	if err != nil {
		return nil, err
	}

	n := b.Size()
	loss := 0.0
	correct := 0
	for i := 0; i < n; i++ {
		truth := floats.MaxIdx(mat.Row(nil, i, b.Targets))
		p := probs.At(i, truth)
		if p < 1e-12 {
			p = 1e-12
		}
		loss -= math.Log(p)
		if floats.MaxIdx(mat.Row(nil, i, probs)) == truth {
			correct++
		}
	}
	loss /= float64(n)

	// grad = X^T (probs - targets) / n
	grad := dot(b.Inputs.T(), subtract(probs, b.Targets))
	l.weights = subtract(l.weights, scale(l.learningRate/float64(n), grad))

	return &TrainResult{
		Loss: loss,
		LogVars: map[string]float64{
			"loss":     loss,
			"accuracy": float64(correct) / float64(n),
		},
	}, nil
}

// Predict runs forward-only and returns per-sample class probabilities.
func (l *Linear) Predict(b *data.Batch) (*mat.Dense, error) {
	return l.forward(b)
}

func (l *Linear) forward(b *data.Batch) (*mat.Dense, error) {
	_, cols := b.Inputs.Dims()
	wr, _ := l.weights.Dims()
	if cols != wr {
		return nil, fmt.Errorf("batch has %d features, model expects %d", cols, wr)
	}
	return softmaxRows(dot(b.Inputs, l.weights)), nil
}
