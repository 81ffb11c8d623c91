package generation

import "fmt"

// InvalidInputError indicates the caller's parameters were out of contract
// (empty topic, item count out of range). Not retryable.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// UnavailableError indicates the completion service could not be reached or
// returned a service-level failure. Transient; the caller may retry.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation unavailable: %v", e.Err)
	}
	return "generation unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// MalformedError indicates the completion text failed validation: not JSON,
// wrong shape, or zero usable items. The caller may retry with the same or
// an adjusted prompt.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed generation output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed generation output: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.Err }
