package yefeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestListUsers_SendsBearerTokenAndDecodesEnvelope(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": {
				"users": [
					{"id": "u1", "name": "Ann", "email": "a@x.com", "plan_type": "free", "status": "active",
					 "created_at": "2025-01-02T03:04:05Z", "updated_at": "2025-01-02T03:04:05Z", "last_login": null}
				],
				"total": 1, "page": 1, "page_size": 1000, "total_pages": 1
			},
			"timestamp": "2025-01-02T03:04:05Z"
		}`))
	})

	users, total, err := client.ListUsers(context.Background(), "tok-123", ListUsersParams{Page: 1, Limit: 1000})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotPath != "/v1/admin/users" {
		t.Fatalf("path = %q, want %q", gotPath, "/v1/admin/users")
	}
	if gotQuery != "limit=1000&page=1" {
		t.Fatalf("query = %q, want %q", gotQuery, "limit=1000&page=1")
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(users) != 1 || users[0].Name != "Ann" {
		t.Fatalf("users = %+v, want one user named Ann", users)
	}
	if users[0].LastLogin != nil {
		t.Fatalf("LastLogin = %v, want nil", users[0].LastLogin)
	}
}

func TestDo_UnauthorizedMapsToErrUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "token expired"}`))
	})

	_, err := client.Me(context.Background(), "stale")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Me() error = %v, want ErrUnauthorized", err)
	}
}

func TestDo_PrefersServerMessageOnHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "admin already invited"}`))
	})

	err := client.InviteAdmin(context.Background(), "tok", "a@x.com")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("InviteAdmin() error = %T, want *APIError", err)
	}
	if apiErr.Message != "admin already invited" {
		t.Fatalf("Message = %q, want %q", apiErr.Message, "admin already invited")
	}
}

func TestDo_FallsBackToStatusTextWithoutServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	})

	err := client.DeleteUser(context.Background(), "tok", "u1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("DeleteUser() error = %T, want *APIError", err)
	}
	if got := apiErr.Error(); got != "HTTP Error: 502 Bad Gateway" {
		t.Fatalf("Error() = %q, want %q", got, "HTTP Error: 502 Bad Gateway")
	}
}

func TestDo_SuccessFalseSurfacesEnvelopeMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "user not found", "data": null}`))
	})

	err := client.UpdateUserStatus(context.Background(), "tok", "u404", StatusVerbSuspend)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("UpdateUserStatus() error = %T, want *APIError", err)
	}
	if apiErr.Message != "user not found" {
		t.Fatalf("Message = %q, want %q", apiErr.Message, "user not found")
	}
}

func TestDo_MalformedBodyIsInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>definitely not json</html>`))
	})

	_, err := client.DashboardMetrics(context.Background(), "tok")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("DashboardMetrics() error = %v, want ErrInvalidResponse", err)
	}
}

func TestDo_MissingDataIsInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "message": "ok"}`))
	})

	_, err := client.Me(context.Background(), "tok")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("Me() error = %v, want ErrInvalidResponse", err)
	}
}

func TestLogin_PostsCredentialsWithoutBearer(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/auth/login" {
			t.Errorf("path = %q, want /v1/auth/login", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "message": "ok",
			"data": {"access_token": "at", "refresh_token": "rt", "expires_in": 900}}`))
	})

	tokens, err := client.Login(context.Background(), "admin@yefe.app", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
	if tokens.AccessToken != "at" || tokens.RefreshToken != "rt" || tokens.ExpiresIn != 900 {
		t.Fatalf("tokens = %+v", tokens)
	}
}

func TestMessage_ExtractionOrder(t *testing.T) {
	t.Parallel()

	apiErr := &APIError{StatusCode: 500, Message: "server said no"}
	if got := Message(apiErr, "fallback"); got != "server said no" {
		t.Fatalf("Message(apiErr) = %q, want server message", got)
	}

	plain := errors.New("connection refused")
	if got := Message(plain, "fallback"); got != "connection refused" {
		t.Fatalf("Message(plain) = %q, want error text", got)
	}

	if got := Message(nil, "fallback"); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
}

func TestActivityDescription_ToleratesObjectShape(t *testing.T) {
	t.Parallel()

	var d Description
	if err := d.UnmarshalJSON([]byte(`{"message": "user upgraded"}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if d != "user upgraded" {
		t.Fatalf("Description = %q, want %q", d, "user upgraded")
	}

	if err := d.UnmarshalJSON([]byte(`"plain text"`)); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if d != "plain text" {
		t.Fatalf("Description = %q, want %q", d, "plain text")
	}
}
