package authn

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/yefe-app/yefe-console/internal/metrics"
	"github.com/yefe-app/yefe-console/internal/session"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

const ContextKeyPrincipal = "auth_principal"

var timeNow = time.Now

// Principal is the signed-in operator attached to the request after the
// session middleware has run. The access token is what every API call on
// behalf of this request authenticates with.
type Principal struct {
	Email       string
	Role        string
	AccessToken string
}

func (p Principal) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(p.Role), yefeapi.RoleAdmin)
}

func PrincipalFromContext(c *echo.Context) (Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(Principal)
	return p, ok
}

// TokenRefresher is the slice of the API client the middleware needs.
type TokenRefresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (yefeapi.Tokens, error)
}

// RequireSession resolves the session's tokens, refreshing the access token
// once when it has expired. A missing session, a failed refresh, or a 401
// from the refresh endpoint all end the session and redirect to sign-in.
func RequireSession(store *session.Store, api TokenRefresher, cookieSecure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			ctx := c.Request().Context()
			tokens, ok := store.Tokens(ctx)
			if !ok {
				return handleUnauth(c)
			}

			if tokens.Expired(timeNow()) {
				refreshed, err := api.RefreshToken(ctx, tokens.Refresh)
				if err != nil {
					metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
					metrics.SessionsEndedTotal.WithLabelValues("refresh_failed").Inc()
					if clearErr := store.Clear(ctx); clearErr != nil {
						c.Logger().Error("clear session after failed refresh", "error", clearErr)
					}
					c.SetCookie(session.ClearRoleCookie(cookieSecure))
					return handleUnauth(c)
				}
				metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
				store.UpdateTokens(ctx, refreshed, timeNow())
				tokens, ok = store.Tokens(ctx)
				if !ok {
					return handleUnauth(c)
				}
			}

			c.Set(ContextKeyPrincipal, Principal{
				Email:       tokens.Email,
				Role:        tokens.Role,
				AccessToken: tokens.Access,
			})
			return next(c)
		}
	}
}

// RequireAdmin gates dashboard routes on the admin role. It assumes
// RequireSession already ran.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			p, ok := PrincipalFromContext(c)
			if !ok {
				return handleUnauth(c)
			}
			if !p.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, http.StatusText(http.StatusForbidden))
			}
			return next(c)
		}
	}
}

func handleUnauth(c *echo.Context) error {
	location := "/sign-in"
	if c.Request().Method == http.MethodGet {
		if next := SanitizeNext(c.Request().URL.RequestURI()); next != "" {
			location = "/sign-in?next=" + url.QueryEscape(next)
		}
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// SanitizeNext rejects redirect targets that leave the site or loop back to
// the sign-in page.
func SanitizeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || len(next) > 2048 {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}

	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || u.Scheme != "" {
		return ""
	}
	if u.Path == "/sign-in" || strings.HasPrefix(u.Path, "/sign-in/") {
		return ""
	}
	if strings.Contains(next, "\\") {
		return ""
	}
	return next
}
