package httpapp

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/yefe-app/yefe-console/internal/config"
	"github.com/yefe-app/yefe-console/internal/http/authn"
	"github.com/yefe-app/yefe-console/internal/http/handlers"
	"github.com/yefe-app/yefe-console/internal/http/views"
	"github.com/yefe-app/yefe-console/internal/session"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h   *handlers.Handlers
	e   *echo.Echo
	srv *http.Server
}

// NewEchoServer creates a new HTTP server.
func NewEchoServer(cfg config.Config, api *yefeapi.Client, store *session.Store) (*EchoServer, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, err
	}
	h := handlers.New(cfg, api, store, renderer)
	es := &EchoServer{h: h, e: echo.New()}
	es.e.HTTPErrorHandler = es.httpErrorHandler
	es.registerRoutes(cfg, api, store)
	return es, nil
}

func (es *EchoServer) registerRoutes(cfg config.Config, api *yefeapi.Client, store *session.Store) {
	es.e.Use(requestIDMiddleware())
	es.e.Use(echo.WrapMiddleware(store.Sessions.LoadAndSave))

	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.AuthCookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	})

	es.e.GET("/healthz", es.h.HandleHealthz)
	es.e.GET("/", es.h.HandleLanding)
	es.e.GET("/sign-in", es.h.HandleSignInGet, csrf)
	es.e.POST("/sign-in", es.h.HandleSignInPost, csrf)
	es.e.POST("/sign-out", es.h.HandleSignOutPost, csrf)
	es.e.GET("/setup-password", es.h.HandleSetupPasswordGet, csrf)
	es.e.POST("/setup-password", es.h.HandleSetupPasswordPost, csrf)

	authed := es.e.Group("/dashboard")
	authed.Use(csrf)
	authed.Use(authn.RequireSession(store, api, cfg.AuthCookieSecure))
	authed.Use(authn.RequireAdmin())
	authed.GET("", es.h.HandleDashboard)
	authed.GET("/analytics", es.h.HandleAnalytics)
	authed.GET("/user-management", es.h.HandleUsers)
	authed.POST("/user-management/:id/status", es.h.HandleUserStatus)
	authed.POST("/user-management/:id/plan", es.h.HandleUserPlan)
	authed.POST("/user-management/:id/delete", es.h.HandleUserDelete)
	authed.GET("/settings", es.h.HandleAdmins)
	authed.POST("/settings/invite", es.h.HandleAdminInvite)
	authed.POST("/settings/:id/delete", es.h.HandleAdminDelete)
}

func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(echo.HeaderXRequestID))
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(handlers.ContextKeyRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// httpErrorHandler keeps error responses terse: expected HTTP errors pass
// through with their status, everything else logs and returns the generic
// internal-error text without leaking details.
func (es *EchoServer) httpErrorHandler(c *echo.Context, err error) {
	if r, _ := echo.UnwrapResponse(c.Response()); r != nil && r.Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound:
			_ = handlers.RenderNotFound(c)
		case http.StatusForbidden:
			_ = c.String(http.StatusForbidden, "403 forbidden")
		default:
			_ = c.String(httpErr.Code, http.StatusText(httpErr.Code))
		}
		return
	}

	_ = es.h.RenderError(c, err)
}

// Start starts the HTTP server.
func (es *EchoServer) Start(addr string) error {
	return es.e.Start(addr)
}

// StartServer starts the HTTP server with a custom http.Server.
func (es *EchoServer) StartServer(server *http.Server) error {
	server.Handler = es.e
	es.srv = server
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (es *EchoServer) Shutdown(ctx context.Context) error {
	if es.srv == nil {
		return nil
	}
	return es.srv.Shutdown(ctx)
}
