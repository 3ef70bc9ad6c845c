package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiresWithin reports whether raw is a JWT whose expiry falls within
// leeway from now. The token is not verified; only the exp claim is read.
// Tokens that do not parse or carry no expiry are treated as still usable —
// the 401 retry path covers those.
func tokenExpiresWithin(raw string, leeway time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < leeway
}
