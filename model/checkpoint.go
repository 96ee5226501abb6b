package model

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Checkpoint is the serializable state of a Linear unit.
type Checkpoint struct {
	Version      string    `json:"version"`
	Features     int       `json:"features"`
	Classes      int       `json:"classes"`
	LearningRate float64   `json:"learningRate"`
	Weights      []float64 `json:"weights"`
}

const checkpointVersion = "1.0"

// Save writes the unit's weights to a JSON checkpoint file.
func (l *Linear) Save(path string) error {
	features, classes := l.weights.Dims()
	ckpt := Checkpoint{
		Version:      checkpointVersion,
		Features:     features,
		Classes:      classes,
		LearningRate: l.learningRate,
		Weights:      append([]float64(nil), l.weights.RawMatrix().Data...),
	}

	raw, err := json.MarshalIndent(ckpt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling checkpoint: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

// LoadLinear restores a Linear unit from a checkpoint file.
func LoadLinear(path string) (*Linear, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}

	var ckpt Checkpoint
	if err := json.Unmarshal(raw, &ckpt); err != nil {
		return nil, fmt.Errorf("parsing checkpoint: %w", err)
	}
	if ckpt.Features <= 0 || ckpt.Classes <= 0 {
		return nil, fmt.Errorf("checkpoint has invalid dimensions %dx%d", ckpt.Features, ckpt.Classes)
	}
	if len(ckpt.Weights) != ckpt.Features*ckpt.Classes {
		return nil, fmt.Errorf("checkpoint has %d weights, want %d", len(ckpt.Weights), ckpt.Features*ckpt.Classes)
	}
	if ckpt.LearningRate <= 0 {
		return nil, fmt.Errorf("checkpoint has invalid learning rate %f", ckpt.LearningRate)
	}

	return &Linear{
		weights:      mat.NewDense(ckpt.Features, ckpt.Classes, ckpt.Weights),
		learningRate: ckpt.LearningRate,
	}, nil
}
