package models

// Selection field names accepted by the coordinator.
const (
	FieldSede     = "sede"
	FieldModality = "modality"
	FieldDate     = "date"
	FieldTime     = "time"
)

// Selection is the mutable state of one in-progress booking attempt. It is
// owned exclusively by the selection coordinator bound to one booking panel.
type Selection struct {
	SedeID     string `json:"sedeId"`
	ModalityID string `json:"modalityId"`
	Date       string `json:"date"` // ISO calendar date
	Time       string `json:"time"` // HH:MM
	Slot       *Slot  `json:"slot,omitempty"`
}

// Complete reports whether every field required for a full validation pass is set.
func (s Selection) Complete() bool {
	return s.SedeID != "" && s.ModalityID != "" && s.Date != "" && s.Time != ""
}

// ValidationState is the read-only snapshot the booking UI renders. It is
// rebuilt wholesale on every validation pass, never patched incrementally.
type ValidationState struct {
	IsValidating bool              `json:"isValidating"`
	IsValid      bool              `json:"isValid"`
	Errors       map[string]string `json:"errors"`
	Warnings     map[string]string `json:"warnings"`
	// Unavailable is set when availability could not be determined because
	// the scheduling API was unreachable. Distinct from "slot unavailable".
	Unavailable bool `json:"unavailable"`
}

// NewValidationState returns an empty, valid-by-absence state with non-nil maps.
func NewValidationState() ValidationState {
	return ValidationState{
		Errors:   map[string]string{},
		Warnings: map[string]string{},
	}
}
