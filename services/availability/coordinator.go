package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"citaflow/models"
	"citaflow/services/scheduling"
	"citaflow/utils"

	"go.uber.org/zap"
)

// State is the coordinator's position in the booking panel lifecycle.
type State string

const (
	// StateIdle means no selection is in progress (panel closed or reset).
	StateIdle State = "idle"
	// StatePartial means some fields are set but validation has not been
	// scheduled for the current inputs.
	StatePartial State = "partialSelection"
	// StateAwaitingValidation means the selection is complete and a
	// debounced validation run is in flight.
	StateAwaitingValidation State = "awaitingValidation"
	// StateValidated means a pipeline result (valid or not) is published.
	StateValidated State = "validated"
)

// ErrCoordinatorClosed is returned on any mutation after Close.
var ErrCoordinatorClosed = errors.New("availability: coordinator closed")

// Snapshot is the read-only view the booking UI renders.
type Snapshot struct {
	State      State                  `json:"state"`
	Selection  models.Selection       `json:"selection"`
	Validation models.ValidationState `json:"validation"`
}

// Coordinator owns the selection for one booking panel. It drives the
// validation pipeline through a debouncer, tags every run with a sequence
// number, and discards resolutions that arrive for a superseded selection.
type Coordinator struct {
	mu         sync.Mutex
	pipeline   *Pipeline
	debouncer  *Debouncer
	sel        models.Selection
	state      State
	validation models.ValidationState
	seq        uint64
	closed     bool
}

// NewCoordinator builds a coordinator for one panel instance. A nil scheduler
// uses real timers.
func NewCoordinator(pipeline *Pipeline, debounceDelay time.Duration, scheduler Scheduler) *Coordinator {
	c := &Coordinator{
		pipeline:   pipeline,
		state:      StateIdle,
		validation: models.NewValidationState(),
	}
	c.debouncer = NewDebouncer(debounceDelay, c.runValidation, scheduler)
	return c
}

// SetField mutates one selection field and advances the state machine.
// Changing sede or modality invalidates date and time; changing date
// invalidates time. Stale validation results are cleared synchronously, so
// the UI never renders a verdict for an abandoned selection.
func (c *Coordinator) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCoordinatorClosed
	}

	switch field {
	case models.FieldSede:
		c.sel.SedeID = value
		c.sel.Date = ""
		c.sel.Time = ""
		c.sel.Slot = nil
	case models.FieldModality:
		c.sel.ModalityID = value
		c.sel.Date = ""
		c.sel.Time = ""
		c.sel.Slot = nil
	case models.FieldDate:
		c.sel.Date = value
		c.sel.Time = ""
		c.sel.Slot = nil
	case models.FieldTime:
		c.sel.Time = value
		c.sel.Slot = nil
	default:
		return fmt.Errorf("availability: unknown selection field %q", field)
	}

	c.afterMutationLocked()
	return nil
}

// PickSlot commits a concrete slot, the terminal trigger of a validation cycle.
func (c *Coordinator) PickSlot(slot models.Slot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCoordinatorClosed
	}

	c.sel.Time = slot.StartTime
	c.sel.Slot = &slot
	c.afterMutationLocked()
	return nil
}

// afterMutationLocked clears the previous verdict, supersedes any in-flight
// run, and schedules a debounced validation when the selection is complete.
func (c *Coordinator) afterMutationLocked() {
	c.validation = models.NewValidationState()
	c.seq++ // any in-flight resolution is now stale

	if c.sel == (models.Selection{}) {
		c.state = StateIdle
		return
	}
	c.state = StatePartial

	if c.sel.Complete() {
		c.state = StateAwaitingValidation
		c.validation.IsValidating = true
		c.debouncer.Trigger()
	}
}

// State returns the current snapshot for rendering.
func (c *Coordinator) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Selection: c.sel, Validation: c.validation}
}

// ValidateNow runs the pipeline immediately with a forced capacity refresh:
// the mandatory pre-submit re-check. The result is both published and
// returned.
func (c *Coordinator) ValidateNow(ctx context.Context) (models.ValidationState, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return models.NewValidationState(), ErrCoordinatorClosed
	}
	c.seq++
	seq := c.seq
	sel := c.sel
	c.validation.IsValidating = true
	c.mu.Unlock()

	state, err := c.pipeline.RunPreSubmit(ctx, sel)
	c.apply(seq, state, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.validation, err
	}
	return c.validation, nil
}

// Reset returns the coordinator to idle with an empty selection.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.sel = models.Selection{}
	c.validation = models.NewValidationState()
	c.seq++
	c.state = StateIdle
}

// Close tears the coordinator down: the debounce timer is cancelled and any
// in-flight validation resolution is discarded. No callback fires after Close.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.state = StateIdle
	c.debouncer.Stop()
}

// runValidation is the debounced entry point. It reads the selection as of
// fire time, so coalesced triggers validate only the final state.
func (c *Coordinator) runValidation() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	sel := c.sel
	c.mu.Unlock()

	state, err := c.pipeline.Run(context.Background(), sel)
	c.apply(seq, state, err)
}

// apply publishes a pipeline resolution unless it is stale (a newer run was
// issued) or the coordinator closed while it was in flight. Transport
// failures become the distinct "can't determine availability" state;
// IsValidating is never left stuck.
func (c *Coordinator) apply(seq uint64, state models.ValidationState, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		return
	}

	if err != nil {
		var netErr *scheduling.NetworkError
		if !errors.As(err, &netErr) {
			utils.GetLogger().Error("validation pipeline failed", zap.Error(err))
		}
		c.validation = models.NewValidationState()
		c.validation.Unavailable = true
		c.state = StateValidated
		return
	}

	c.validation = state
	c.state = StateValidated
}
