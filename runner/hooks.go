package runner

import (
	"loopkit/data"
)

// HookPoint names a fixed moment in a loop's execution. The string values
// are a stable wire contract for external handlers and must not change.
type HookPoint string

const (
	BeforeTrain      HookPoint = "before_train"
	BeforeTrainEpoch HookPoint = "before_train_epoch"
	BeforeTrainIter  HookPoint = "before_train_iter"
	AfterTrainIter   HookPoint = "after_train_iter"
	AfterTrainEpoch  HookPoint = "after_train_epoch"
	AfterTrain       HookPoint = "after_train"

	BeforeVal      HookPoint = "before_val"
	BeforeValEpoch HookPoint = "before_val_epoch"
	BeforeValIter  HookPoint = "before_val_iter"
	AfterValIter   HookPoint = "after_val_iter"
	AfterValEpoch  HookPoint = "after_val_epoch"
	AfterVal       HookPoint = "after_val"

	BeforeTest      HookPoint = "before_test"
	BeforeTestEpoch HookPoint = "before_test_epoch"
	BeforeTestIter  HookPoint = "before_test_iter"
	AfterTestIter   HookPoint = "after_test_iter"
	AfterTestEpoch  HookPoint = "after_test_epoch"
	AfterTest       HookPoint = "after_test"
)

// AllHookPoints lists the closed enumeration in dispatch order within each
// regime. Bindings against any other name are rejected at construction.
var AllHookPoints = []HookPoint{
	BeforeTrain, BeforeTrainEpoch, BeforeTrainIter,
	AfterTrainIter, AfterTrainEpoch, AfterTrain,
	BeforeVal, BeforeValEpoch, BeforeValIter,
	AfterValIter, AfterValEpoch, AfterVal,
	BeforeTest, BeforeTestEpoch, BeforeTestIter,
	AfterTestIter, AfterTestEpoch, AfterTest,
}

var knownHookPoints = func() map[HookPoint]struct{} {
	m := make(map[HookPoint]struct{}, len(AllHookPoints))
	for _, p := range AllHookPoints {
		m[p] = struct{}{}
	}
	return m
}()

// Event carries the loop state visible to a hook. Epoch-level and
// run-level hook-points receive a nil Event; iteration-level hook-points
// always receive the batch index and batch, and the after_* variants also
// carry the computation unit's outputs (*model.TrainResult for training,
// *mat.Dense predictions for validation and test).
type Event struct {
	BatchIdx int
	Batch    *data.Batch
	Outputs  any
}

// Hook handles one hook-point event. A non-nil error aborts the run.
type Hook func(r *Runner, e *Event) error

// Binding attaches a handler to a hook-point. Handlers bound to the same
// point run in binding order.
type Binding struct {
	Point HookPoint
	Fn    Hook
}
