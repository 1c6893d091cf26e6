package yefeapi

import (
	"context"
	"net/http"
)

// DashboardMetrics fetches the aggregated metrics payload behind the
// dashboard and analytics screens.
func (c *Client) DashboardMetrics(ctx context.Context, token string) (Dashboard, error) {
	var dashboard Dashboard
	if err := c.do(ctx, "dashboard", http.MethodGet, "/v1/dashboard", token, nil, &dashboard); err != nil {
		return Dashboard{}, err
	}
	return dashboard, nil
}
