package runner

import (
	"fmt"

	"loopkit/data"
	"loopkit/eval"
	"loopkit/model"
)

// TestLoop runs a single forward-only pass over its data source, feeding
// predictions to the evaluator and recording the finalized metrics under
// test/<name>. Structurally identical to ValLoop apart from hook namespace
// and log-key prefix; counters are never mutated.
type TestLoop struct {
	baseLoop
	evaluator eval.Evaluator
}

func NewTestLoop(r *Runner, src data.Source, evaluator eval.Evaluator) (*TestLoop, error) {
	base, err := newBaseLoop(r, src)
	if err != nil {
		return nil, err
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator must be non-nil")
	}
	return &TestLoop{baseLoop: base, evaluator: evaluator}, nil
}

// Run executes the test pass to completion.
func (l *TestLoop) Run() error {
	l.runner.ActiveSource = l.source
	if err := l.runner.CallHook(BeforeTest, nil); err != nil {
		return err
	}
	if err := l.runner.CallHook(BeforeTestEpoch, nil); err != nil {
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
		l.runner.Hub().Log("test/"+name, value)
	}

	if err := l.runner.CallHook(AfterTestEpoch, nil); err != nil {
		return err
	}
	return l.runner.CallHook(AfterTest, nil)
}

func (l *TestLoop) runIter(idx int, batch *data.Batch) error {
	if err := l.runner.CallHook(BeforeTestIter, &Event{BatchIdx: idx, Batch: batch}); err != nil {
		return err
	}

	preds, err := l.runner.Unit().Predict(batch)
	if err != nil {
		return err
	}
	l.evaluator.Process(batch, preds)

	return l.runner.CallHook(AfterTestIter, &Event{BatchIdx: idx, Batch: batch, Outputs: preds})
}
