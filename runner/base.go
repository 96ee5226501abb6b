package runner

import (
	"fmt"

	"loopkit/data"
)

// Loop runs one execution regime to completion. A train loop may invoke a
// different loop's Run mid-execution (nested validation) and must resume
// with its own state intact.
type Loop interface {
	Run() error
}

// baseLoop carries what every regime owns: its data source and the
// back-reference to the shared runner.
type baseLoop struct {
	runner *Runner
	source data.Source
}

func newBaseLoop(r *Runner, src data.Source) (baseLoop, error) {
	if r == nil {
		return baseLoop{}, fmt.Errorf("runner must be non-nil")
	}
	if src == nil {
		return baseLoop{}, fmt.Errorf("data source must be non-nil")
	}
	return baseLoop{runner: r, source: src}, nil
}
