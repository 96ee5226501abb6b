// Package model defines the trainable computation unit the loops drive.
package model

import (
	"gonum.org/v1/gonum/mat"

	"loopkit/data"
)

// Mode selects between weight-updating and forward-only execution.
type Mode int

const (
	Training Mode = iota
	Evaluation
)

// TrainResult is the loss-mode output of a unit. LogVars holds the scalar
// values the loops record under train/<name>.
type TrainResult struct {
	Loss    float64
	LogVars map[string]float64
}

// Unit is the computation unit contract. TrainStep runs a loss-returning
// step (forward, backward, update); Predict runs forward-only and returns
// per-sample predictions aligned with the batch rows.
type Unit interface {
	SetMode(Mode)
	TrainStep(b *data.Batch) (*TrainResult, error)
	Predict(b *data.Batch) (*mat.Dense, error)
}
