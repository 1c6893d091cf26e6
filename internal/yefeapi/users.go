package yefeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListUsersParams narrows a user listing. The console leaves the filters empty
// and requests one large page, paginating locally.
type ListUsersParams struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	PlanType string
}

type userListPayload struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// ListUsers fetches a page of app users.
func (c *Client) ListUsers(ctx context.Context, token string, params ListUsersParams) ([]User, int64, error) {
	values := url.Values{}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		values.Set("search", params.Search)
	}
	if params.Status != "" {
		values.Set("status", params.Status)
	}
	if params.PlanType != "" {
		values.Set("plan_type", params.PlanType)
	}

	path := "/v1/admin/users"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var payload userListPayload
	if err := c.do(ctx, "list_users", http.MethodGet, path, token, nil, &payload); err != nil {
		return nil, 0, err
	}
	return payload.Users, payload.Total, nil
}

// UpdateUserStatus sets a user's status; verb is "suspend" or "active".
func (c *Client) UpdateUserStatus(ctx context.Context, token, userID, verb string) error {
	body := map[string]string{"status": verb}
	path := fmt.Sprintf("/v1/admin/%s/status", url.PathEscape(userID))
	return c.do(ctx, "update_user_status", http.MethodPut, path, token, body, nil)
}

// UpdateUserPlan moves a user between "free" and "yefe_plus".
func (c *Client) UpdateUserPlan(ctx context.Context, token, userID, plan string) error {
	body := map[string]string{"plan": plan}
	path := fmt.Sprintf("/v1/admin/%s/plan", url.PathEscape(userID))
	return c.do(ctx, "update_user_plan", http.MethodPut, path, token, body, nil)
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	path := fmt.Sprintf("/v1/admin/%s", url.PathEscape(userID))
	return c.do(ctx, "delete_user", http.MethodDelete, path, token, nil, nil)
}
