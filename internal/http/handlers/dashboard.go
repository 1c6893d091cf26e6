package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/yefe-app/yefe-console/internal/http/authn"
	"github.com/yefe-app/yefe-console/internal/http/viewmodels"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

// HandleDashboard fetches the metrics payload on every visit; the page has no
// held collection to go stale.
func (h *Handlers) HandleDashboard(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}

	data := viewmodels.DashboardViewData{Layout: h.LayoutData(c, "Dashboard")}
	dashboard, err := h.API.DashboardMetrics(c.Request().Context(), principal.AccessToken)
	if err != nil {
		data.ErrorMessage = yefeapi.Message(err, "Failed to load dashboard metrics")
		return h.RenderPage(c, "dashboard", data)
	}

	data.Stats = viewmodels.DashboardStats(dashboard)
	data.Activity = viewmodels.DashboardActivity(dashboard)
	data.Insights = viewmodels.DashboardInsights(dashboard)
	data.LastUpdated = dashboard.LastUpdated
	return h.RenderPage(c, "dashboard", data)
}

// HandleHealthz returns a simple health check response.
func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(200, "ok")
}

func (h *Handlers) HandleAnalytics(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}

	data := viewmodels.AnalyticsViewData{Layout: h.LayoutData(c, "Analytics")}
	dashboard, err := h.API.DashboardMetrics(c.Request().Context(), principal.AccessToken)
	if err != nil {
		data.ErrorMessage = yefeapi.Message(err, "Failed to load analytics")
		return h.RenderPage(c, "analytics", data)
	}

	data.Stats = viewmodels.AnalyticsStats(dashboard)
	data.Registrations = viewmodels.RegistrationRows(dashboard)
	data.LastUpdated = dashboard.LastUpdated
	return h.RenderPage(c, "analytics", data)
}
