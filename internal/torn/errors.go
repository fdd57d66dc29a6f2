package torn

import (
	"errors"
	"fmt"
)

// Torn API error codes. The full table lives in the API docs; the monitor
// only needs to distinguish auth, permission, and rate-limit classes.
const (
	codeKeyEmpty      = 1
	codeIncorrectKey  = 2
	codeRateLimit     = 5
	codeWrongIDEntity = 7 // key not related to the requested entity
	codeFederalJail   = 10
	codeAccessLevel   = 16
	codeKeyPaused     = 18
)

// APIError is a failure reported inside the Torn API error envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("torn api error %d: %s", e.Code, e.Message)
}

// Auth reports whether the error means the key itself is unusable.
func (e *APIError) Auth() bool {
	switch e.Code {
	case codeKeyEmpty, codeIncorrectKey, codeFederalJail, codeKeyPaused:
		return true
	}
	return false
}

// Permission reports whether the key lacks access to the requested data, as
// opposed to being invalid outright.
func (e *APIError) Permission() bool {
	return e.Code == codeWrongIDEntity || e.Code == codeAccessLevel
}

// RateLimited reports whether the API rejected the call for request volume.
func (e *APIError) RateLimited() bool {
	return e.Code == codeRateLimit
}

// IsPermission reports whether err is an APIError in the permission class.
// Auth failures count too: a dead key can never read company data.
func IsPermission(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Permission() || apiErr.Auth())
}

// IsRateLimit reports whether err is a Torn rate-limit rejection.
func IsRateLimit(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.RateLimited()
}
