package scheduling

import "fmt"

// NetworkError marks a transport failure or non-success HTTP status from the
// scheduling API. It is the only error class the validation pipeline
// propagates instead of folding into the rule error maps, so the UI can
// distinguish "unable to check availability" from "unavailable".
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("scheduling api: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("scheduling api: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
