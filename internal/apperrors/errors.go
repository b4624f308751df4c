package apperrors

import (
	"errors"
)

var (
	// ErrValidation wraps every malformed-input failure. Handlers may echo
	// the wrapped detail in a 400 body.
	ErrValidation = errors.New("validation failed")

	// ErrEmailAlreadyInUse is returned when the unique email constraint is
	// violated at write time.
	ErrEmailAlreadyInUse = errors.New("email already in use")

	// ErrInvalidCredentials covers unknown email, wrong password and
	// revoked/unknown tokens alike. Callers never learn which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken means a token failed structural verification:
	// bad encoding, bad signature or unexpected signing method.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidIdentifier means a path identifier is not a valid object id.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound covers both an absent document and a malformed identifier,
	// so a caller cannot tell the two apart.
	ErrNotFound = errors.New("not found")
)
