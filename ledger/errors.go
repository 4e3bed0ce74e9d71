package ledger

import "errors"

// Error kinds. Operations wrap them with detail; test with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrUnavailable          = errors.New("equipment not available")
	ErrConflict             = errors.New("referenced by an active loan")
	ErrAlreadyReturned      = errors.New("loan already returned")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrPersistence          = errors.New("persistence failed")
)
