package runner

import (
	"fmt"

	"loopkit/data"
	"loopkit/model"
)

// IterBasedTrainLoop trains for a fixed number of global iterations,
// treating the whole run as one logical epoch. Batches come from a
// single-pass cursor; if maxIters exceeds the batches the source can
// produce, the run fails with data.ErrExhausted rather than recycling.
type IterBasedTrainLoop struct {
	baseLoop
	cursor   *data.Cursor
	maxIters int
	val      *ValLoop
	interval int
}

// NewIterBasedTrainLoop builds the loop and wraps src in a one-shot
// cursor. val may be nil; when it is not, interval must be positive.
func NewIterBasedTrainLoop(r *Runner, src data.Source, maxIters int, val *ValLoop, interval int) (*IterBasedTrainLoop, error) {
	base, err := newBaseLoop(r, src)
	if err != nil {
		return nil, err
	}
	if maxIters <= 0 {
		return nil, fmt.Errorf("max iterations must be positive, got %d", maxIters)
	}
	if val != nil && interval <= 0 {
		return nil, fmt.Errorf("validation interval must be positive, got %d", interval)
	}
	return &IterBasedTrainLoop{
		baseLoop: base,
		cursor:   data.NewCursor(src),
		maxIters: maxIters,
		val:      val,
		interval: interval,
	}, nil
}

// MaxIters returns the total iterations this loop will train.
func (l *IterBasedTrainLoop) MaxIters() int {
	return l.maxIters
}

// Run trains until the runner's iteration counter reaches maxIters. The
// whole run is bracketed by a single before/after_train_epoch pair.
func (l *IterBasedTrainLoop) Run() error {
	l.runner.ActiveSource = l.source
	if err := l.runner.CallHook(BeforeTrain, nil); err != nil {
		return err
	}
	if err := l.runner.CallHook(BeforeTrainEpoch, nil); err != nil {
		return err
	}

	for l.runner.Iter() < l.maxIters {
		l.runner.Unit().SetMode(model.Training)

		batch, err := l.cursor.Next()
		if err != nil {
			return fmt.Errorf("drawing batch at iteration %d: %w", l.runner.Iter(), err)
		}
		if err := l.runIter(batch); err != nil {
			return err
		}

		if l.val != nil && l.runner.Iter()%l.interval == 0 {
			if err := l.val.Run(); err != nil {
				return err
			}
			l.runner.ActiveSource = l.source
		}
	}

	if err := l.runner.CallHook(AfterTrainEpoch, nil); err != nil {
		return err
	}
	return l.runner.CallHook(AfterTrain, nil)
}

func (l *IterBasedTrainLoop) runIter(batch *data.Batch) error {
	// The batch index hooks see is the running global iteration count,
	// not a per-epoch index.
	idx := l.runner.Iter()

	if err := l.runner.CallHook(BeforeTrainIter, &Event{BatchIdx: idx, Batch: batch}); err != nil {
		return err
	}

	outputs, err := l.runner.Unit().TrainStep(batch)
	if err != nil {
		return err
	}
	l.runner.LastOutputs = outputs
	for name, value := range outputs.LogVars {
		l.runner.Hub().Log("train/"+name, value)
	}

	if err := l.runner.CallHook(AfterTrainIter, &Event{BatchIdx: idx, Batch: batch, Outputs: outputs}); err != nil {
		return err
	}
	l.runner.advanceIteration()
	return nil
}
