package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core operations. Callers classify failures
// with errors.Is; presentation is the caller's responsibility.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrItemNotFound  = errors.New("menu item not found")
	ErrItemExists    = errors.New("menu item already exists")
	ErrOrderNotFound = errors.New("order not found")
	ErrLineNotFound  = errors.New("order line not found")

	ErrDuplicateLine    = errors.New("order already contains this item")
	ErrOrderAlreadyPaid = errors.New("order has already been paid")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrCommentTooLong     = fmt.Errorf("comment exceeds %d characters", MaxCommentLength)

	// ErrStoreUnavailable wraps transport and timeout failures from the
	// persistence layer. Mutations run inside transactions, so a store
	// failure never leaves partial state behind.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed input, detected before any store
// access.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
