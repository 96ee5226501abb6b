package runner

import (
	"fmt"

	"loopkit/data"
	"loopkit/eval"
	"loopkit/model"
)

// ValLoop runs a single forward-only pass over its data source, feeding
// predictions to the evaluator and recording the finalized metrics under
// val/<name>. It never mutates the runner's epoch or iteration counters.
type ValLoop struct {
	baseLoop
	evaluator eval.Evaluator
}

func NewValLoop(r *Runner, src data.Source, evaluator eval.Evaluator) (*ValLoop, error) {
	base, err := newBaseLoop(r, src)
	if err != nil {
		return nil, err
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator must be non-nil")
	}
	return &ValLoop{baseLoop: base, evaluator: evaluator}, nil
}

// Run executes the validation pass to completion.
func (l *ValLoop) Run() error {
	l.runner.ActiveSource = l.source
	if err := l.runner.CallHook(BeforeVal, nil); err != nil {
		return err
	}
	if err := l.runner.CallHook(BeforeValEpoch, nil); err != nil {
		return err
	}
	l.runner.Unit().SetMode(model.Evaluation)

	for idx := 0; idx < l.source.Len(); idx++ {
		batch, err := l.source.Batch(idx)
		if err != nil {
			return err
		}
		if err := l.runIter(idx, batch); err != nil {
			return err
		}
	}

	metrics, err := l.evaluator.Evaluate(l.source.SampleCount())
	if err != nil {
		return err
	}
	for name, value := range metrics {
		l.runner.Hub().Log("val/"+name, value)
	}

	if err := l.runner.CallHook(AfterValEpoch, nil); err != nil {
		return err
	}
	return l.runner.CallHook(AfterVal, nil)
}

func (l *ValLoop) runIter(idx int, batch *data.Batch) error {
	if err := l.runner.CallHook(BeforeValIter, &Event{BatchIdx: idx, Batch: batch}); err != nil {
		return err
	}

	preds, err := l.runner.Unit().Predict(batch)
	if err != nil {
		return err
	}
	l.evaluator.Process(batch, preds)

	return l.runner.CallHook(AfterValIter, &Event{BatchIdx: idx, Batch: batch, Outputs: preds})
}
