package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func (s *apiStub) serveDashboard() {
	s.mux.HandleFunc("GET /v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(envelope(map[string]any{
			"totalUsers":         map[string]any{"value": 1234, "change": 0.052, "changeType": "increase"},
			"premiumSubscribers": map[string]any{"value": 321, "change": 0.018, "changeType": "decrease"},
			"recentActivity": []map[string]any{
				{"id": "e1", "type": "signup", "user": "ann@x.com", "description": "Created an account", "timeAgo": "2m ago"},
				{"id": "e2", "type": "journal", "user": "bob@x.com", "description": map[string]any{"message": "Wrote an entry"}, "timeAgo": "5m ago"},
			},
			"quickInsights": map[string]any{
				"premiumConversionRate": 26.0,
				"activeUsersToday":      87,
				"pendingInvitations":    3,
			},
			"lastUpdated":           "2026-09-01 10:00",
			"MonthleyRegistrations": []map[string]any{{"month": "Jul", "count": 40}, {"month": "Aug", "count": 80}},
		}))
	})
}

func newDashboardRouter(h *Handlers) *echo.Echo {
	e := newRouter(h)
	e.GET("/dashboard", h.HandleDashboard, injectPrincipal)
	e.GET("/dashboard/analytics", h.HandleAnalytics, injectPrincipal)
	return e
}

func TestHandleDashboard_RendersMetrics(t *testing.T) {
	stub := newAPIStub(t)
	stub.serveDashboard()
	h := newTestHandlers(t, stub.server.URL)
	e := newDashboardRouter(h)

	rec := perform(t, h, e, http.MethodGet, "/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"1,234", "+5.2%", "321", "-1.8%",
		"Created an account", "Wrote an entry", "2m ago",
		"26.0%", "87", "Last updated 2026-09-01 10:00",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestHandleDashboard_ErrorStateShowsServerMessage(t *testing.T) {
	stub := newAPIStub(t)
	stub.mux.HandleFunc("GET /v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "metrics store offline"})
	})
	h := newTestHandlers(t, stub.server.URL)
	e := newDashboardRouter(h)

	rec := perform(t, h, e, http.MethodGet, "/dashboard", nil)
	body := rec.Body.String()
	if !strings.Contains(body, "metrics store offline") {
		t.Fatal("server message not surfaced")
	}
	if !strings.Contains(body, "Try again") {
		t.Fatal("retry control missing")
	}
}

func TestHandleAnalytics_RendersRegistrationBars(t *testing.T) {
	stub := newAPIStub(t)
	stub.serveDashboard()
	h := newTestHandlers(t, stub.server.URL)
	e := newDashboardRouter(h)

	rec := perform(t, h, e, http.MethodGet, "/dashboard/analytics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Jul", "Aug", "Conversion Rate", "26.0%", "width: 50%", "width: 100%"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}
