package runner

import (
	"fmt"

	"loopkit/data"
	"loopkit/model"
)

// EpochBasedTrainLoop trains for a fixed number of epochs, each a full
// pass over the data source. When a validation loop is attached, it runs
// synchronously after every epoch whose completed count is divisible by
// interval.
type EpochBasedTrainLoop struct {
	baseLoop
	maxEpochs int
	maxIters  int
	val       *ValLoop
	interval  int
}

// NewEpochBasedTrainLoop builds the loop. val may be nil; when it is not,
// interval must be positive.
func NewEpochBasedTrainLoop(r *Runner, src data.Source, maxEpochs int, val *ValLoop, interval int) (*EpochBasedTrainLoop, error) {
	base, err := newBaseLoop(r, src)
	if err != nil {
		return nil, err
	}
	if maxEpochs <= 0 {
		return nil, fmt.Errorf("max epochs must be positive, got %d", maxEpochs)
	}
	if val != nil && interval <= 0 {
		return nil, fmt.Errorf("validation interval must be positive, got %d", interval)
	}
	return &EpochBasedTrainLoop{
		baseLoop:  base,
		maxEpochs: maxEpochs,
		maxIters:  maxEpochs * src.Len(),
		val:       val,
		interval:  interval,
	}, nil
}

// MaxEpochs returns the total epochs this loop will train.
func (l *EpochBasedTrainLoop) MaxEpochs() int {
	return l.maxEpochs
}

// MaxIters returns maxEpochs times the source batch count, fixed at
// construction. A source whose length changes between epochs is not
// defended against.
func (l *EpochBasedTrainLoop) MaxIters() int {
	return l.maxIters
}

// Run trains until the runner's epoch counter reaches maxEpochs.
func (l *EpochBasedTrainLoop) Run() error {
	l.runner.ActiveSource = l.source
	if err := l.runner.CallHook(BeforeTrain, nil); err != nil {
		return err
	}

	for l.runner.Epoch() < l.maxEpochs {
		if err := l.runEpoch(); err != nil {
			return err
		}

		// Post-increment cadence: the modulo check sees the count of
		// epochs already completed, so interval=1 validates after the
		// first epoch.
		if l.val != nil && l.runner.Epoch()%l.interval == 0 {
			if err := l.val.Run(); err != nil {
				return err
			}
			l.runner.ActiveSource = l.source
		}
	}

	return l.runner.CallHook(AfterTrain, nil)
}

func (l *EpochBasedTrainLoop) runEpoch() error {
	if err := l.runner.CallHook(BeforeTrainEpoch, nil); err != nil {
		return err
	}
	l.runner.Unit().SetMode(model.Training)

	for idx := 0; idx < l.source.Len(); idx++ {
		batch, err := l.source.Batch(idx)
		if err != nil {
			return err
		}
		if err := l.runIter(idx, batch); err != nil {
			return err
		}
	}

	if err := l.runner.CallHook(AfterTrainEpoch, nil); err != nil {
		return err
	}
	l.runner.advanceEpoch()

	l.runner.Logger().Infow("epoch complete",
		"epoch", l.runner.Epoch(), "max_epochs", l.maxEpochs, "iter", l.runner.Iter())
	return nil
}

func (l *EpochBasedTrainLoop) runIter(idx int, batch *data.Batch) error {
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
