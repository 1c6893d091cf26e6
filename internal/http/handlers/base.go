// Package handlers contains HTTP handler logic split by screen.
package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/yefe-app/yefe-console/internal/config"
	"github.com/yefe-app/yefe-console/internal/http/authn"
	"github.com/yefe-app/yefe-console/internal/http/viewmodels"
	"github.com/yefe-app/yefe-console/internal/http/views"
	"github.com/yefe-app/yefe-console/internal/listview"
	"github.com/yefe-app/yefe-console/internal/session"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

// Handlers groups all HTTP handlers and shared dependencies. The two
// controllers hold the list screens' collections between requests.
type Handlers struct {
	Cfg    config.Config
	API    *yefeapi.Client
	Store  *session.Store
	Views  *views.Renderer
	Users  *listview.Controller[viewmodels.UserRecord]
	Admins *listview.Controller[viewmodels.AdminRecord]
}

func New(cfg config.Config, api *yefeapi.Client, store *session.Store, renderer *views.Renderer) *Handlers {
	return &Handlers{
		Cfg:    cfg,
		API:    api,
		Store:  store,
		Views:  renderer,
		Users:  listview.NewController(userSchema()),
		Admins: listview.NewController(adminSchema()),
	}
}

func userSchema() listview.Schema[viewmodels.UserRecord] {
	return listview.Schema[viewmodels.UserRecord]{
		ID: func(u viewmodels.UserRecord) string { return u.ID },
		Search: []func(viewmodels.UserRecord) string{
			func(u viewmodels.UserRecord) string { return u.Name },
			func(u viewmodels.UserRecord) string { return u.Email },
		},
		Sortable: map[string]func(viewmodels.UserRecord) string{
			"name":       func(u viewmodels.UserRecord) string { return u.Name },
			"email":      func(u viewmodels.UserRecord) string { return u.Email },
			"plan":       func(u viewmodels.UserRecord) string { return u.Plan },
			"joined":     func(u viewmodels.UserRecord) string { return u.JoinDate },
			"last_login": func(u viewmodels.UserRecord) string { return u.LastLogin },
			"status":     func(u viewmodels.UserRecord) string { return u.Status },
		},
	}
}

func adminSchema() listview.Schema[viewmodels.AdminRecord] {
	return listview.Schema[viewmodels.AdminRecord]{
		ID: func(a viewmodels.AdminRecord) string { return a.ID },
		Search: []func(viewmodels.AdminRecord) string{
			func(a viewmodels.AdminRecord) string { return a.Name },
			func(a viewmodels.AdminRecord) string { return a.Email },
		},
		Sortable: map[string]func(viewmodels.AdminRecord) string{
			"name":       func(a viewmodels.AdminRecord) string { return a.Name },
			"email":      func(a viewmodels.AdminRecord) string { return a.Email },
			"role":       func(a viewmodels.AdminRecord) string { return a.Role },
			"joined":     func(a viewmodels.AdminRecord) string { return a.JoinDate },
			"last_login": func(a viewmodels.AdminRecord) string { return a.LastLogin },
			"status":     func(a viewmodels.AdminRecord) string { return a.Status },
		},
	}
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c *echo.Context, title string) viewmodels.LayoutData {
	principal, _ := authn.PrincipalFromContext(c)
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	interval := h.Cfg.TokenCheckInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return viewmodels.LayoutData{
		Title:              title,
		ActivePath:         c.Request().URL.Path,
		UserEmail:          principal.Email,
		UserRole:           principal.Role,
		CSRFToken:          csrfToken,
		Toast:              popFlashToast(c),
		AutoRefreshSeconds: int(interval / time.Second),
	}
}

// RenderPage renders the named page into a buffer first so a template failure
// still produces a clean error response.
func (h *Handlers) RenderPage(c *echo.Context, page string, data any) error {
	var buf bytes.Buffer
	if err := h.Views.Render(&buf, page, data); err != nil {
		return h.RenderError(c, err)
	}
	return c.HTML(http.StatusOK, buf.String())
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c *echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}
