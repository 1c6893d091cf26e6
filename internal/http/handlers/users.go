package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/yefe-app/yefe-console/internal/http/authn"
	"github.com/yefe-app/yefe-console/internal/http/viewmodels"
	"github.com/yefe-app/yefe-console/internal/listview"
	"github.com/yefe-app/yefe-console/internal/metrics"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

const usersPath = "/dashboard/user-management"

var userColumns = []columnSpec{
	{Field: "name", Label: "Name", Sortable: true},
	{Field: "email", Label: "Email", Sortable: true},
	{Field: "plan", Label: "Plan", Sortable: true},
	{Field: "joined", Label: "Joined", Sortable: true},
	{Field: "last_login", Label: "Last login", Sortable: true},
	{Field: "status", Label: "Status", Sortable: true},
}

// fetchUsers builds the refresh closure for the current request's token. The
// API is asked for one large page; searching, sorting, and paging all happen
// against the held collection.
func (h *Handlers) fetchUsers(token string) func(context.Context) ([]viewmodels.UserRecord, error) {
	return func(ctx context.Context) ([]viewmodels.UserRecord, error) {
		users, _, err := h.API.ListUsers(ctx, token, yefeapi.ListUsersParams{
			Page:  1,
			Limit: h.Cfg.ListFetchLimit,
		})
		if err != nil {
			return nil, errors.New(yefeapi.Message(err, "Failed to load users"))
		}
		records := make([]viewmodels.UserRecord, 0, len(users))
		for _, u := range users {
			records = append(records, viewmodels.UserRecordFrom(u))
		}
		return records, nil
	}
}

func (h *Handlers) HandleUsers(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	params := h.listParams(c)
	fetch := h.fetchUsers(principal.AccessToken)

	if c.QueryParam("refresh") == "1" {
		if err := h.Users.Refresh(ctx, fetch); err != nil {
			metrics.ListRefreshesTotal.WithLabelValues("users", "failure").Inc()
			setFlashToast(c, viewmodels.ToastViewData{
				Category: "error",
				Title:    "Refresh failed",
			})
		} else {
			metrics.ListRefreshesTotal.WithLabelValues("users", "success").Inc()
			setFlashToast(c, viewmodels.ToastViewData{
				Category: "success",
				Title:    "Data refreshed successfully",
			})
		}
		return c.Redirect(http.StatusSeeOther, listURL(usersPath, params))
	}

	if err := h.Users.EnsureLoaded(ctx, fetch); err != nil && !h.Users.Loaded() {
		metrics.ListRefreshesTotal.WithLabelValues("users", "failure").Inc()
		return h.RenderPage(c, "users", viewmodels.UsersViewData{
			Layout:       h.LayoutData(c, "User Management"),
			Table:        viewmodels.TableData{RefreshHref: refreshURL(usersPath, params)},
			ErrorMessage: err.Error(),
		})
	}

	layout := h.LayoutData(c, "User Management")
	if msg := h.Users.LastError(); msg != "" {
		layout.Banner = msg + " — showing previously loaded data."
	}

	view := h.Users.View(params)
	rows := make([]viewmodels.UserRow, 0, len(view.Items))
	for _, record := range view.Items {
		rows = append(rows, h.userRow(record))
	}
	return h.RenderPage(c, "users", viewmodels.UsersViewData{
		Layout: layout,
		Table:  buildTable(usersPath, params, view, userColumns),
		Rows:   rows,
	})
}

func (h *Handlers) userRow(record viewmodels.UserRecord) viewmodels.UserRow {
	row := viewmodels.UserRow{
		Record:    record,
		Pending:   h.Users.Pending(record.ID),
		Suspended: record.Status == viewmodels.StatusSuspendedLabel,
	}
	if row.Suspended {
		row.StatusVerb = yefeapi.StatusVerbActivate
		row.StatusLabel = "Activate"
	} else {
		row.StatusVerb = yefeapi.StatusVerbSuspend
		row.StatusLabel = "Suspend"
	}
	if record.Plan == viewmodels.PlanPlusLabel {
		row.PlanValue = yefeapi.PlanFree
		row.PlanLabel = "Downgrade"
	} else {
		row.PlanValue = yefeapi.PlanPlus
		row.PlanLabel = "Upgrade"
	}
	return row
}

func (h *Handlers) HandleUserStatus(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	id := strings.TrimSpace(c.Param("id"))
	verb := strings.TrimSpace(c.FormValue("status"))
	params := h.returnParams(c)

	if verb != yefeapi.StatusVerbSuspend && verb != yefeapi.StatusVerbActivate {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	newStatus := viewmodels.StatusActiveLabel
	if verb == yefeapi.StatusVerbSuspend {
		newStatus = viewmodels.StatusSuspendedLabel
	}

	err := h.Users.Mutate(ctx, id,
		func(ctx context.Context) error {
			return h.API.UpdateUserStatus(ctx, principal.AccessToken, id, verb)
		},
		func(u *viewmodels.UserRecord) { u.Status = newStatus },
	)
	h.flashMutation(c, "users", "status", err, "User status updated", "Could not update the user's status")
	return c.Redirect(http.StatusSeeOther, listURL(usersPath, params))
}

func (h *Handlers) HandleUserPlan(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	id := strings.TrimSpace(c.Param("id"))
	plan := strings.TrimSpace(c.FormValue("plan"))
	params := h.returnParams(c)

	if plan != yefeapi.PlanFree && plan != yefeapi.PlanPlus {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown plan")
	}

	newPlan := viewmodels.PlanFreeLabel
	if plan == yefeapi.PlanPlus {
		newPlan = viewmodels.PlanPlusLabel
	}

	err := h.Users.Mutate(ctx, id,
		func(ctx context.Context) error {
			return h.API.UpdateUserPlan(ctx, principal.AccessToken, id, plan)
		},
		func(u *viewmodels.UserRecord) { u.Plan = newPlan },
	)
	h.flashMutation(c, "users", "plan", err, "User plan updated", "Could not update the user's plan")
	return c.Redirect(http.StatusSeeOther, listURL(usersPath, params))
}

func (h *Handlers) HandleUserDelete(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	id := strings.TrimSpace(c.Param("id"))
	params := h.returnParams(c)

	err := h.Users.Remove(ctx, id, func(ctx context.Context) error {
		return h.API.DeleteUser(ctx, principal.AccessToken, id)
	})
	h.flashMutation(c, "users", "delete", err, "User deleted", "Could not delete the user")
	return c.Redirect(http.StatusSeeOther, listURL(usersPath, params))
}

// flashMutation records the metric and queues the outcome toast for a row
// action. A duplicate while the first is pending gets its own message.
func (h *Handlers) flashMutation(c *echo.Context, screen, action string, err error, okTitle, failTitle string) {
	switch {
	case err == nil:
		metrics.RowMutationsTotal.WithLabelValues(screen, action, "success").Inc()
		setFlashToast(c, viewmodels.ToastViewData{Category: "success", Title: okTitle})
	case errors.Is(err, listview.ErrActionPending):
		metrics.RowMutationsTotal.WithLabelValues(screen, action, "duplicate").Inc()
		setFlashToast(c, viewmodels.ToastViewData{
			Category: "warning",
			Title:    "Hold on",
			Description: "An action for this row is still in progress.",
		})
	case errors.Is(err, listview.ErrNotFound):
		metrics.RowMutationsTotal.WithLabelValues(screen, action, "failure").Inc()
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       failTitle,
			Description: "The row is no longer in the list. Refresh and try again.",
		})
	default:
		metrics.RowMutationsTotal.WithLabelValues(screen, action, "failure").Inc()
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       failTitle,
			Description: yefeapi.Message(err, ""),
		})
	}
}
