package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

// ExpiryFrom derives the absolute access-token expiry. The login payload's
// expires_in wins; when the API omits it, fall back to the JWT exp claim of
// the access token itself. The token is only read here, never validated; the
// API stays the authority on validity.
func ExpiryFrom(tokens yefeapi.Tokens, now time.Time) time.Time {
	if tokens.ExpiresIn > 0 {
		return now.Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}
	if exp, ok := jwtExpiry(tokens.AccessToken); ok {
		return exp
	}
	return now
}

func jwtExpiry(accessToken string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
