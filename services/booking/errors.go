package booking

import "errors"

var (
	// ErrPanelNotFound is returned for unknown or already-closed session ids.
	ErrPanelNotFound = errors.New("booking panel not found")

	// ErrSelectionIncomplete is returned when confirmation is attempted
	// before every selection field is set.
	ErrSelectionIncomplete = errors.New("selection is incomplete")
)
