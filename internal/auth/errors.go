package auth

import "errors"

var (
	// ErrInvalidStateFormat means the callback state parameter could not be
	// parsed. No backend call is made.
	ErrInvalidStateFormat = errors.New("state parameter is not valid")

	// ErrStateMismatch means the callback nonce does not match the pending
	// login attempt, or no attempt is pending. Treated as a forgery
	// attempt; the exchange endpoint is never contacted.
	ErrStateMismatch = errors.New("state does not match the pending login attempt")

	// ErrInvalidExchangeResponse means the backend accepted the code but
	// returned a payload without an access token or user record.
	ErrInvalidExchangeResponse = errors.New("incomplete token exchange response")

	ErrRefreshFailed    = errors.New("token refresh failed")
	ErrNoRefreshToken   = errors.New("no refresh token available")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ProviderError carries the error the identity provider reported on the
// callback redirect.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "identity provider error: " + e.Message
}
