package booking

import (
	"context"

	"citaflow/models"
	"citaflow/services/availability"
	"citaflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenPanel creates a new booking panel session with a fresh coordinator.
func (s *DefaultPanelService) OpenPanel() (string, availability.Snapshot) {
	sessionID := uuid.New().String()
	coordinator := availability.NewCoordinator(s.Pipeline, s.DebounceDelay, s.Scheduler)

	s.mu.Lock()
	s.panels[sessionID] = coordinator
	s.mu.Unlock()

	utils.GetLogger().Info("booking panel opened", zap.String("sessionID", sessionID))
	return sessionID, coordinator.State()
}

// SetField forwards a selection change to the panel's coordinator.
func (s *DefaultPanelService) SetField(sessionID, field, value string) (availability.Snapshot, error) {
	coordinator, err := s.panel(sessionID)
	if err != nil {
		return availability.Snapshot{}, err
	}
	if err := coordinator.SetField(field, value); err != nil {
		return availability.Snapshot{}, err
	}
	return coordinator.State(), nil
}

// PickSlot commits a concrete slot selection on the panel.
func (s *DefaultPanelService) PickSlot(sessionID string, slot models.Slot) (availability.Snapshot, error) {
	coordinator, err := s.panel(sessionID)
	if err != nil {
		return availability.Snapshot{}, err
	}
	if err := coordinator.PickSlot(slot); err != nil {
		return availability.Snapshot{}, err
	}
	return coordinator.State(), nil
}

// PanelState returns the current snapshot for rendering.
func (s *DefaultPanelService) PanelState(sessionID string) (availability.Snapshot, error) {
	coordinator, err := s.panel(sessionID)
	if err != nil {
		return availability.Snapshot{}, err
	}
	return coordinator.State(), nil
}

// ConfirmSlot runs the mandatory pre-submit re-validation with a refreshed
// capacity snapshot and reports whether a booking attempt may proceed.
func (s *DefaultPanelService) ConfirmSlot(ctx context.Context, sessionID string) (ConfirmResult, error) {
	coordinator, err := s.panel(sessionID)
	if err != nil {
		return ConfirmResult{}, err
	}

	if !coordinator.State().Selection.Complete() {
		return ConfirmResult{}, ErrSelectionIncomplete
	}

	validation, err := coordinator.ValidateNow(ctx)
	if err != nil {
		// Transport failure: availability could not be determined. The
		// verdict stays "cannot book" and the caller renders the retry path.
		return ConfirmResult{CanBook: false, Validation: validation}, err
	}
	return ConfirmResult{CanBook: validation.IsValid, Validation: validation}, nil
}

// ClosePanel tears down the panel's coordinator and forgets the session.
func (s *DefaultPanelService) ClosePanel(sessionID string) error {
	s.mu.Lock()
	coordinator, ok := s.panels[sessionID]
	if ok {
		delete(s.panels, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrPanelNotFound
	}
	coordinator.Close()
	utils.GetLogger().Info("booking panel closed", zap.String("sessionID", sessionID))
	return nil
}

func (s *DefaultPanelService) panel(sessionID string) (*availability.Coordinator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coordinator, ok := s.panels[sessionID]
	if !ok {
		return nil, ErrPanelNotFound
	}
	return coordinator, nil
}
