package admission

import "errors"

var (
	// ErrNotFound is returned when a referenced record or sub-record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a command's input fails validation; the
	// applicant is left untouched in that case.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a command collides with existing state,
	// such as applying twice to the same program.
	ErrConflict = errors.New("conflict")
)
