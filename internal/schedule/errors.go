package schedule

import "errors"

var (
	// ErrPatientNotFound is returned when an operation names a patient
	// that was never registered.
	ErrPatientNotFound = errors.New("patient not found")
)
