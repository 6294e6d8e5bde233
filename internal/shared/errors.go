package shared

import "errors"

var (
	// ErrNotFound indicates the referenced id is absent from its collection.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or out-of-range input; the operation had no effect.
	ErrValidation = errors.New("validation failed")
	// ErrStockConflict indicates a checkout would drive stock negative; the whole transaction was rejected.
	ErrStockConflict = errors.New("insufficient stock")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing occurs when the CSRF token is absent.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
