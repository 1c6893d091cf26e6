package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/yefe-app/yefe-console/internal/http/authn"
	"github.com/yefe-app/yefe-console/internal/http/viewmodels"
	"github.com/yefe-app/yefe-console/internal/metrics"
	"github.com/yefe-app/yefe-console/internal/session"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

const minPasswordLength = 8

// HandleLanding serves the public marketing page. Signed-in operators go
// straight to the dashboard.
func (h *Handlers) HandleLanding(c *echo.Context) error {
	if _, ok := h.Store.Tokens(c.Request().Context()); ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return h.RenderPage(c, "landing", viewmodels.LandingViewData{
		Layout: viewmodels.LayoutData{Title: "Yefe"},
	})
}

func (h *Handlers) HandleSignInGet(c *echo.Context) error {
	if _, ok := h.Store.Tokens(c.Request().Context()); ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return h.RenderPage(c, "signin", viewmodels.LoginViewData{
		Layout:    viewmodels.LayoutData{Title: "Sign in", Toast: popFlashToast(c)},
		CSRFToken: csrfToken,
	})
}

func (h *Handlers) HandleSignInPost(c *echo.Context) error {
	ctx := c.Request().Context()
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.LoginViewData{
		Layout:    viewmodels.LayoutData{Title: "Sign in"},
		CSRFToken: csrfToken,
		Email:     email,
	}

	if email == "" || strings.TrimSpace(password) == "" {
		data.ErrorMessage = "Email and password are required."
		return h.RenderPage(c, "signin", data)
	}

	tokens, err := h.API.Login(ctx, email, password)
	if err != nil {
		data.ErrorMessage = yefeapi.Message(err, "Invalid email or password.")
		return h.RenderPage(c, "signin", data)
	}

	account, err := h.API.Me(ctx, tokens.AccessToken)
	if err != nil {
		data.ErrorMessage = yefeapi.Message(err, "Could not load your account.")
		return h.RenderPage(c, "signin", data)
	}
	if !strings.EqualFold(strings.TrimSpace(account.Role), yefeapi.RoleAdmin) {
		data.ErrorMessage = "This console is for admin accounts only."
		return h.RenderPage(c, "signin", data)
	}

	if err := h.Store.Establish(ctx, tokens, account, time.Now()); err != nil {
		return err
	}
	c.SetCookie(session.RoleCookie(account.Role, h.Cfg.AuthCookieSecure))

	if next := authn.SanitizeNext(c.FormValue("next")); next != "" {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// HandleSignOutPost revokes the session upstream when it can, then always
// clears local state.
func (h *Handlers) HandleSignOutPost(c *echo.Context) error {
	ctx := c.Request().Context()
	if tokens, ok := h.Store.Tokens(ctx); ok {
		if err := h.API.Logout(ctx, tokens.Access); err != nil {
			c.Logger().Warn("upstream logout failed", "error", err)
		}
	}
	if err := h.Store.Clear(ctx); err != nil {
		return err
	}
	c.SetCookie(session.ClearRoleCookie(h.Cfg.AuthCookieSecure))
	metrics.SessionsEndedTotal.WithLabelValues("sign_out").Inc()

	setFlashToast(c, viewmodels.ToastViewData{
		Category: "success",
		Title:    "Signed out",
	})
	return c.Redirect(http.StatusSeeOther, "/sign-in")
}

func (h *Handlers) HandleSetupPasswordGet(c *echo.Context) error {
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return h.RenderPage(c, "setup_password", viewmodels.SetupPasswordViewData{
		Layout:    viewmodels.LayoutData{Title: "Set your password", Toast: popFlashToast(c)},
		CSRFToken: csrfToken,
		Token:     strings.TrimSpace(c.QueryParam("token")),
	})
}

func (h *Handlers) HandleSetupPasswordPost(c *echo.Context) error {
	ctx := c.Request().Context()
	inviteToken := strings.TrimSpace(c.FormValue("token"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	data := viewmodels.SetupPasswordViewData{
		Layout:    viewmodels.LayoutData{Title: "Set your password"},
		CSRFToken: csrfToken,
		Token:     inviteToken,
	}

	switch {
	case inviteToken == "":
		data.ErrorMessage = "This invitation link is missing its token. Use the link from your email."
	case strings.TrimSpace(password) == "" || strings.TrimSpace(confirm) == "":
		data.ErrorMessage = "Both password fields are required."
	case len(password) < minPasswordLength:
		data.ErrorMessage = "Password must be at least 8 characters."
	case password != confirm:
		data.ErrorMessage = "Passwords do not match."
	}
	if data.ErrorMessage != "" {
		return h.RenderPage(c, "setup_password", data)
	}

	if err := h.API.AcceptInvitation(ctx, inviteToken, password, confirm); err != nil {
		data.ErrorMessage = yefeapi.Message(err, "Could not set your password. The invitation may have expired.")
		return h.RenderPage(c, "setup_password", data)
	}

	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Password set",
		Description: "You can sign in now.",
	})
	return c.Redirect(http.StatusSeeOther, "/sign-in")
}
