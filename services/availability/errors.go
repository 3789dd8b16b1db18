package availability

import "fmt"

// Validation error codes. These are the recoverable, user-facing failures the
// pipeline folds into the validation state; they never cross the pipeline
// boundary as Go errors.
const (
	CodePastDate             = "pastDate"
	CodeInvalidDate          = "invalidDate"
	CodeIncompatibleModality = "incompatibleModality"
	CodeSlotNotFound         = "slotNotFound"
	CodeNoCapacity           = "noCapacity"
)

// Rule keys under which errors and warnings are published to the UI.
const (
	RuleDate     = "date"
	RuleModality = "modality"
	RuleSlot     = "slot"
)

// User-facing messages, in the product's locale.
const (
	msgPastDate             = "No se puede agendar en una fecha pasada"
	msgInvalidDate          = "La fecha seleccionada no es válida"
	msgIncompatibleModality = "La modalidad seleccionada no está disponible en esta sede"
	msgSlotNotFound         = "El horario seleccionado no está disponible"
	msgNoCapacity           = "No hay capacidad disponible"
	msgFarDateWarning       = "La fecha seleccionada está a más de 30 días"
	msgLastSlotWarning      = "Último cupo disponible"
)

// ValidationError is one recoverable rule failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}
