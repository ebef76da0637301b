package options

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrSubmitInFlight is returned by Submit while another submission of
	// the same form is running.
	ErrSubmitInFlight = errors.New("extraction already in progress")
	// ErrClosed is returned by Submit after the controller was torn down.
	ErrClosed = errors.New("form closed")
)

const (
	// SubmitIdle is the submit caption when no submission is running.
	SubmitIdle = "Start Extraction"
	// SubmitBusy is the submit caption while a submission is running.
	SubmitBusy = "Extracting…"
)

// SubmitFunc performs one submission of the form's current snapshot.
type SubmitFunc func(ctx context.Context, set Set, state State) error

// Observer is notified with the snapshots before and after every change.
type Observer func(before, after State)

// FormView is the rendered form: its fields in order and the submit action.
type FormView struct {
	Fields      []Field
	Submitting  bool
	SubmitLabel string
}

// Controller owns the option set and form state of one provider selection.
// Every change replaces the snapshot wholesale; readers always get the latest
// one. At most one submission runs at a time.
type Controller struct {
	set Set

	mu        sync.RWMutex
	state     State
	observers map[int]Observer
	nextObs   int

	submitting atomic.Bool
	closed     atomic.Bool
}

// NewController creates a controller for set, starting from initial.
func NewController(set Set, initial State) *Controller {
	return &Controller{
		set:       set,
		state:     initial,
		observers: map[int]Observer{},
	}
}

// Set returns the option set.
func (c *Controller) Set() Set { return c.set }

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Apply replaces the state with fn(current) and notifies observers.
func (c *Controller) Apply(fn func(State) State) State {
	c.mu.Lock()
	before := c.state
	after := fn(before)
	c.state = after
	observers := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.mu.Unlock()

	for _, o := range observers {
		o(before, after)
	}
	return after
}

// Change sets one key, the equivalent of a single field's change event.
func (c *Controller) Change(key string, v any) State {
	return c.Apply(func(s State) State { return s.With(key, v) })
}

// Subscribe registers an observer and returns its cancel function.
func (c *Controller) Subscribe(o Observer) func() {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = o
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Submitting reports whether a submission is running.
func (c *Controller) Submitting() bool { return c.submitting.Load() }

// Submit runs fn with the current snapshot unless a submission is already
// running, in which case fn is not called and ErrSubmitInFlight is returned.
// The outcome of fn is returned as is.
func (c *Controller) Submit(ctx context.Context, fn SubmitFunc) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer c.submitting.Store(false)
	return fn(ctx, c.set, c.Snapshot())
}

// Form renders the full form from the latest snapshot.
func (c *Controller) Form() FormView {
	submitting := c.Submitting()
	label := SubmitIdle
	if submitting {
		label = SubmitBusy
	}
	return FormView{
		Fields:      RenderSet(c.set, c.Snapshot()),
		Submitting:  submitting,
		SubmitLabel: label,
	}
}

// Close tears the controller down. Results that arrive afterwards should be
// discarded by whoever checks Closed.
func (c *Controller) Close() {
	c.closed.Store(true)
	c.mu.Lock()
	c.observers = map[int]Observer{}
	c.mu.Unlock()
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool { return c.closed.Load() }
