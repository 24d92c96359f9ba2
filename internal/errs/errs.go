// Package errs defines the error categories shared between the service layer
// and the HTTP boundary. Handlers translate these with errors.Is into status
// codes; everything else is treated as an internal error.
package errs

import "errors"

var (
	// ErrNotFound signals that a referenced resource does not exist, or that
	// a child resource does not belong to the referenced parent.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidRequest signals malformed input that survived boundary
	// validation, e.g. a negative page number or an unknown enum value.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflict signals a uniqueness or concurrent-mutation conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrForbidden signals an ownership or role violation.
	ErrForbidden = errors.New("access denied")
)
