package auth

import "errors"

// Every failure the auth layer can report. Each one is an expected,
// recoverable outcome for the HTTP layer (mapped to 401), never a crash.
// Infrastructure failures (directory unreachable) are returned wrapped and
// are deliberately not part of this set.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotConfirmed        = errors.New("email address has not been confirmed")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("could not find user for token subject")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenMalformed      = errors.New("token is malformed or has an invalid signature")
	ErrTokenMissingSubject = errors.New("token is missing 'sub' claim")
	ErrWrongTokenType      = errors.New("token has incorrect type")
)

// IsAuthFailure reports whether err belongs to the authentication failure
// taxonomy, as opposed to an infrastructure error.
func IsAuthFailure(err error) bool {
	for _, kind := range []error{
		ErrInvalidCredentials,
		ErrNotConfirmed,
		ErrUserNotFound,
		ErrTokenExpired,
		ErrTokenMalformed,
		ErrTokenMissingSubject,
		ErrWrongTokenType,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
