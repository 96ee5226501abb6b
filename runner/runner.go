// Package runner drives a trainable computation unit through four
// execution regimes: epoch-based training, iteration-based training,
// validation, and testing. The loops are synchronous; every batch draw,
// unit invocation, and hook dispatch runs to completion before the next
// step begins.
package runner

import (
	"fmt"

	"go.uber.org/zap"

	"loopkit/data"
	"loopkit/hub"
	"loopkit/model"
)

// Runner is the shared execution context all loops operate against. It
// owns the counters, the hook registry, the log sink, and the computation
// unit. Counters only move through advanceEpoch and advanceIteration,
// called exclusively by the train loops; validation and test never touch
// them.
type Runner struct {
	unit  model.Unit
	hub   *hub.Hub
	log   *zap.SugaredLogger
	hooks map[HookPoint][]Hook

	epoch int
	iter  int

	// ActiveSource is the data source currently in flight, for hook
	// introspection. The running loop keeps it current.
	ActiveSource data.Source

	// LastOutputs is the most recent train-step result, visible to
	// after_train_iter handlers and anything running later.
	LastOutputs any
}

// New builds a Runner. The hook registry is resolved here, once; bindings
// against unknown hook-point names fail construction. A nil hub gets an
// in-memory one, a nil logger is replaced with a no-op.
func New(unit model.Unit, h *hub.Hub, log *zap.SugaredLogger, bindings []Binding) (*Runner, error) {
	if unit == nil {
		return nil, fmt.Errorf("computation unit must be non-nil")
	}
	if h == nil {
		h = hub.New(nil)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	hooks := make(map[HookPoint][]Hook)
	for i, b := range bindings {
		if _, ok := knownHookPoints[b.Point]; !ok {
			return nil, fmt.Errorf("binding %d: unknown hook point %q", i, b.Point)
		}
		if b.Fn == nil {
			return nil, fmt.Errorf("binding %d: nil handler for %q", i, b.Point)
		}
		hooks[b.Point] = append(hooks[b.Point], b.Fn)
	}

	return &Runner{unit: unit, hub: h, log: log, hooks: hooks}, nil
}

// Epoch returns the number of training epochs fully completed.
func (r *Runner) Epoch() int {
	return r.epoch
}

// Iter returns the number of global training steps completed.
func (r *Runner) Iter() int {
	return r.iter
}

// Unit returns the computation unit the loops drive.
func (r *Runner) Unit() model.Unit {
	return r.unit
}

// Hub returns the scalar log sink.
func (r *Runner) Hub() *hub.Hub {
	return r.hub
}

// Logger returns the runner's structured logger.
func (r *Runner) Logger() *zap.SugaredLogger {
	return r.log
}

// CallHook dispatches every handler bound to point, in binding order. The
// first handler error is returned unmodified and aborts the run.
func (r *Runner) CallHook(point HookPoint, e *Event) error {
	for _, fn := range r.hooks[point] {
		if err := fn(r, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) advanceEpoch() {
	r.epoch++
}

func (r *Runner) advanceIteration() {
	r.iter++
}
