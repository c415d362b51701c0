package model

import "errors"

// Common errors used across the application
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrRoomCodeExhausted = errors.New("could not allocate an unused room code")
)

// ValidationError is a rejected player action: malformed or out-of-phase
// input, wrong actor, insufficient points. It carries the player-facing
// message and never indicates a server fault; room state is unchanged.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
