package patients

import "errors"

// ErrPatientNotFound is returned when no patient matches a lookup.
var ErrPatientNotFound = errors.New("patient not found")

// MissingFieldError reports an absent required registration field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}
