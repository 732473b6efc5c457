package domain

import "errors"

var (
	// ErrUserNotFound is returned when a username has not been registered.
	ErrUserNotFound = errors.New("User not found; register first")
	// ErrQuestionNotFound indicates no question is stored for a ladder level.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAlreadyClaimed is returned on a second daily claim for the same calendar date.
	ErrAlreadyClaimed = errors.New("Already claimed today")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err refers to a missing user or question.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrQuestionNotFound)
}
