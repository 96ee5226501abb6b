package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"loopkit/model"
)

// ProgressBindings logs training progress through the runner's logger
// after every n completed iterations.
func ProgressBindings(every int) ([]Binding, error) {
	if every <= 0 {
		return nil, fmt.Errorf("progress interval must be positive, got %d", every)
	}
	return []Binding{
		{Point: AfterTrainIter, Fn: func(r *Runner, e *Event) error {
			// Iter has not advanced past this batch yet; +1 is the count
			// of steps completed once this hook returns.
			done := r.Iter() + 1
			if done%every != 0 {
				return nil
			}
			fields := []any{"iter", done, "epoch", r.Epoch()}
			if out, ok := e.Outputs.(*model.TrainResult); ok {
				fields = append(fields, "loss", out.Loss)
			}
			r.Logger().Infow("train progress", fields...)
			return nil
		}},
	}, nil
}

// Saver is satisfied by units that can write a checkpoint file.
type Saver interface {
	Save(path string) error
}

// CheckpointBindings saves the unit after every completed training epoch
// to dir/epoch_<n>.json. The unit must implement Saver.
func CheckpointBindings(unit Saver, dir string) ([]Binding, error) {
	if unit == nil {
		return nil, fmt.Errorf("checkpoint unit must be non-nil")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating checkpoint dir: %w", err)
	}
	return []Binding{
		{Point: AfterTrainEpoch, Fn: func(r *Runner, e *Event) error {
			// Epoch has not advanced yet; +1 is the 1-based number of the
			// epoch that just finished.
			path := filepath.Join(dir, fmt.Sprintf("epoch_%d.json", r.Epoch()+1))
			if err := unit.Save(path); err != nil {
				return err
			}
			r.Logger().Infow("checkpoint saved", "path", path)
			return nil
		}},
	}, nil
}

// TimingBindings logs wall-clock duration for the whole training run and
// for each validation pass.
func TimingBindings() []Binding {
	var trainStart, valStart time.Time
	return []Binding{
		{Point: BeforeTrain, Fn: func(r *Runner, e *Event) error {
			trainStart = time.Now()
			return nil
		}},
		{Point: AfterTrain, Fn: func(r *Runner, e *Event) error {
			r.Logger().Infow("training finished",
				"elapsed", time.Since(trainStart), "epochs", r.Epoch(), "iters", r.Iter())
			return nil
		}},
		{Point: BeforeVal, Fn: func(r *Runner, e *Event) error {
			valStart = time.Now()
			return nil
		}},
		{Point: AfterVal, Fn: func(r *Runner, e *Event) error {
			r.Logger().Infow("validation finished", "elapsed", time.Since(valStart))
			return nil
		}},
	}
}
