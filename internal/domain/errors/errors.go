package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. Authentication failures
// deliberately share one sentinel so responses cannot be used to enumerate
// accounts or probe which token check failed.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrUnauthorized         = errors.New("invalid or expired token")
	ErrTokenNotFound        = errors.New("token not found")
	ErrProjectNotFound      = errors.New("associated project not found")
	ErrWorkLogNotFound      = errors.New("work log not found")
	ErrInvalidWorkLog       = errors.New("invalid work log")
	ErrInvalidProject       = errors.New("invalid project")
)
