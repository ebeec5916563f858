// Package schema validates untrusted AI-generated page schemas and repairs
// them with a single AI-assisted attempt when strict validation fails.
package schema

import (
	"fmt"
	"strings"
)

// Error represents a strict validation failure with per-field messages.
type Error struct {
	Errors []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Errors, "; "))
}

// RepairFailedError is returned when the single repair attempt did not
// converge: both the original parse and the re-parse of the repaired output
// failed. Errors accumulates messages from both passes.
type RepairFailedError struct {
	Errors []string
	Cause  error
}

func (e *RepairFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema repair failed after one attempt: %s: %v", strings.Join(e.Errors, "; "), e.Cause)
	}
	return fmt.Sprintf("schema repair failed after one attempt: %s", strings.Join(e.Errors, "; "))
}

func (e *RepairFailedError) Unwrap() error {
	return e.Cause
}
