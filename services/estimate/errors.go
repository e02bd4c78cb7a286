// File: services/estimate/errors.go
package estimate

import "fmt"

// ValidationError reports a missing or malformed request field. The
// pipeline never runs when one of these is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// CapabilityError wraps a failed external search, generation or scoring
// call. These are always recovered locally with a documented fallback;
// the type exists so callers and logs can tell the failure classes apart.
type CapabilityError struct {
	Capability string
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability %s unavailable: %v", e.Capability, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// TimeoutError means the end-to-end deadline elapsed before normalization
// completed, so no usable data exists to degrade to.
type TimeoutError struct {
	Stage string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("pipeline deadline exceeded during %s", e.Stage)
}
