package yefeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type adminListPayload struct {
	Admins []Admin `json:"admins"`
	Total  int64   `json:"total"`
}

// ListAdmins fetches every console operator account.
func (c *Client) ListAdmins(ctx context.Context, token string) ([]Admin, error) {
	var payload adminListPayload
	if err := c.do(ctx, "list_admins", http.MethodGet, "/v1/admin/admins", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Admins, nil
}

// InviteAdmin sends an invitation email. The new admin's id is assigned
// upstream, so callers refetch the list rather than patching it locally.
func (c *Client) InviteAdmin(ctx context.Context, token, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, "invite_admin", http.MethodPost, "/v1/admin/invite", token, body, nil)
}

// DeleteAdmin removes an operator account.
func (c *Client) DeleteAdmin(ctx context.Context, token, adminID string) error {
	path := fmt.Sprintf("/v1/admin/admins/%s", url.PathEscape(adminID))
	return c.do(ctx, "delete_admin", http.MethodDelete, path, token, nil, nil)
}
