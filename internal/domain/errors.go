package domain

import "errors"

// Error taxonomy shared by the services. Handlers map these onto HTTP status
// codes; anything that does not match is treated as an opaque persistence
// failure.
var (
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyMember = errors.New("user is already a member")
	ErrNotAllowed    = errors.New("operation not allowed")
)
