package booking

import (
	"context"
	"sync"
	"time"

	"citaflow/models"
	"citaflow/services/availability"
)

// PanelService manages one selection coordinator per open booking panel,
// keyed by session id. The coordinator owns the selection; this service owns
// the coordinator lifecycle.
type PanelService interface {
	OpenPanel() (string, availability.Snapshot)
	SetField(sessionID, field, value string) (availability.Snapshot, error)
	PickSlot(sessionID string, slot models.Slot) (availability.Snapshot, error)
	PanelState(sessionID string) (availability.Snapshot, error)
	ConfirmSlot(ctx context.Context, sessionID string) (ConfirmResult, error)
	ClosePanel(sessionID string) error
}

// ConfirmResult is the outcome of the pre-submit re-validation gate. CanBook
// is the client-side best-effort verdict; the backend still performs the
// atomic capacity check at booking time.
type ConfirmResult struct {
	CanBook    bool                   `json:"canBook"`
	Validation models.ValidationState `json:"validation"`
}

// DefaultPanelService implements PanelService with an in-memory panel store.
type DefaultPanelService struct {
	Pipeline      *availability.Pipeline
	DebounceDelay time.Duration
	Scheduler     availability.Scheduler

	mu     sync.Mutex
	panels map[string]*availability.Coordinator
}

// NewPanelService builds the default panel service. A nil scheduler uses real
// timers.
func NewPanelService(pipeline *availability.Pipeline, debounceDelay time.Duration, scheduler availability.Scheduler) *DefaultPanelService {
	return &DefaultPanelService{
		Pipeline:      pipeline,
		DebounceDelay: debounceDelay,
		Scheduler:     scheduler,
		panels:        make(map[string]*availability.Coordinator),
	}
}
