// Package session owns the console's auth state. Tokens live in exactly one
// place, the server-side session; everything else (the role cookie the route
// guard reads) is a projection written on the same path.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

const (
	keyAccessToken  = "auth_access_token"
	keyRefreshToken = "auth_refresh_token"
	keyTokenExpiry  = "auth_token_expiry"
	keyRole         = "auth_user_role"
	keyEmail        = "auth_user_email"

	// RoleCookieName matches the cookie the original console exposed to its
	// route-guard middleware.
	RoleCookieName = "userRole"

	// expirySkew refreshes slightly early so an in-flight request does not
	// cross the expiry line mid-call.
	expirySkew = 30 * time.Second
)

// Tokens is the console's view of one signed-in operator.
type Tokens struct {
	Access  string
	Refresh string
	Expiry  time.Time
	Role    string
	Email   string
}

func (t Tokens) Expired(now time.Time) bool {
	if t.Expiry.IsZero() {
		return true
	}
	return !now.Before(t.Expiry.Add(-expirySkew))
}

func (t Tokens) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(t.Role), yefeapi.RoleAdmin)
}

// Store wraps the scs session manager with the token vocabulary.
type Store struct {
	Sessions *scs.SessionManager
}

func NewStore(lifetime time.Duration, cookieSecure bool) *Store {
	sessions := scs.New()
	if lifetime > 0 {
		sessions.Lifetime = lifetime
	}
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.Secure = cookieSecure
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	return &Store{Sessions: sessions}
}

// Establish rotates the session id and stores a fresh token set.
func (s *Store) Establish(ctx context.Context, tokens yefeapi.Tokens, account yefeapi.Account, now time.Time) error {
	if err := s.Sessions.RenewToken(ctx); err != nil {
		return err
	}
	s.putTokens(ctx, tokens, now)
	s.Sessions.Put(ctx, keyRole, strings.TrimSpace(account.Role))
	s.Sessions.Put(ctx, keyEmail, strings.TrimSpace(account.Email))
	return nil
}

// UpdateTokens replaces the token pair after a refresh exchange, leaving the
// role and email untouched.
func (s *Store) UpdateTokens(ctx context.Context, tokens yefeapi.Tokens, now time.Time) {
	s.putTokens(ctx, tokens, now)
}

func (s *Store) putTokens(ctx context.Context, tokens yefeapi.Tokens, now time.Time) {
	s.Sessions.Put(ctx, keyAccessToken, tokens.AccessToken)
	s.Sessions.Put(ctx, keyRefreshToken, tokens.RefreshToken)
	s.Sessions.Put(ctx, keyTokenExpiry, ExpiryFrom(tokens, now).Unix())
}

// Clear destroys the session entirely.
func (s *Store) Clear(ctx context.Context) error {
	return s.Sessions.Destroy(ctx)
}

// Tokens loads the current token set; ok is false when nobody is signed in.
func (s *Store) Tokens(ctx context.Context) (Tokens, bool) {
	access := s.Sessions.GetString(ctx, keyAccessToken)
	if strings.TrimSpace(access) == "" {
		return Tokens{}, false
	}
	tokens := Tokens{
		Access:  access,
		Refresh: s.Sessions.GetString(ctx, keyRefreshToken),
		Role:    s.Sessions.GetString(ctx, keyRole),
		Email:   s.Sessions.GetString(ctx, keyEmail),
	}
	if unix := s.Sessions.GetInt64(ctx, keyTokenExpiry); unix > 0 {
		tokens.Expiry = time.Unix(unix, 0)
	}
	return tokens, true
}

// RoleCookie is the read-only projection of the stored role. It carries no
// secret; the route guard only needs the role string.
func RoleCookie(role string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RoleCookieName,
		Value:    strings.TrimSpace(role),
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearRoleCookie expires the projection.
func ClearRoleCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RoleCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
