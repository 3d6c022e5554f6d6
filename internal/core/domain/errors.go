package domain

import "errors"

// Error kinds every service operation is allowed to surface. Handlers fold
// these into the {success:false, error} response body; anything outside the
// taxonomy is treated as an internal fault and masked with a generic
// message.
var (
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTodoNotFound covers both a missing record and a record owned by
	// another user. The two cases are deliberately indistinguishable so the
	// API never confirms the existence of someone else's todo.
	ErrTodoNotFound = errors.New("todo not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError holds the first violated rule's message, surfaced
// verbatim to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
