package yefeapi

import (
	"context"
	"net/http"
)

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, email, password string) (Tokens, error) {
	var tokens Tokens
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/v1/auth/login", "", body, &tokens); err != nil {
		return Tokens{}, err
	}
	return tokens, nil
}

// Logout invalidates the session upstream. Failures are reported but callers
// clear local state regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, "/v1/auth/logout", token, map[string]string{}, nil)
}

// Me returns the account behind the token, including its role.
func (c *Client) Me(ctx context.Context, token string) (Account, error) {
	var account Account
	if err := c.do(ctx, "me", http.MethodGet, "/v1/me", token, nil, &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

// RefreshToken performs a single refresh-token exchange. No retry, no backoff.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (Tokens, error) {
	var tokens Tokens
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, "refresh_token", http.MethodPost, "/v1/auth/refresh-token", "", body, &tokens); err != nil {
		return Tokens{}, err
	}
	return tokens, nil
}

// AcceptInvitation redeems an admin invitation token and sets the password.
func (c *Client) AcceptInvitation(ctx context.Context, inviteToken, password, confirmPassword string) error {
	body := map[string]string{
		"token":           inviteToken,
		"password":        password,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, "accept_invitation", http.MethodPost, "/v1/admin/invitations/accept", "", body, nil)
}
