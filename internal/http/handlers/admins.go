package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/yefe-app/yefe-console/internal/http/authn"
	"github.com/yefe-app/yefe-console/internal/http/viewmodels"
	"github.com/yefe-app/yefe-console/internal/metrics"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

const adminsPath = "/dashboard/settings"

var adminColumns = []columnSpec{
	{Field: "name", Label: "Name", Sortable: true},
	{Field: "email", Label: "Email", Sortable: true},
	{Field: "role", Label: "Role", Sortable: true},
	{Field: "joined", Label: "Joined", Sortable: true},
	{Field: "last_login", Label: "Last login", Sortable: true},
	{Field: "status", Label: "Status", Sortable: true},
}

func (h *Handlers) fetchAdmins(token string) func(context.Context) ([]viewmodels.AdminRecord, error) {
	return func(ctx context.Context) ([]viewmodels.AdminRecord, error) {
		admins, err := h.API.ListAdmins(ctx, token)
		if err != nil {
			return nil, errors.New(yefeapi.Message(err, "Failed to load admins"))
		}
		records := make([]viewmodels.AdminRecord, 0, len(admins))
		for _, a := range admins {
			records = append(records, viewmodels.AdminRecordFrom(a))
		}
		return records, nil
	}
}

// HandleAdmins serves the settings screen: the admin team table plus the
// invite form.
func (h *Handlers) HandleAdmins(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	params := h.listParams(c)
	fetch := h.fetchAdmins(principal.AccessToken)

	if c.QueryParam("refresh") == "1" {
		if err := h.Admins.Refresh(ctx, fetch); err != nil {
			metrics.ListRefreshesTotal.WithLabelValues("admins", "failure").Inc()
			setFlashToast(c, viewmodels.ToastViewData{
				Category: "error",
				Title:    "Refresh failed",
			})
		} else {
			metrics.ListRefreshesTotal.WithLabelValues("admins", "success").Inc()
			setFlashToast(c, viewmodels.ToastViewData{
				Category: "success",
				Title:    "Data refreshed successfully",
			})
		}
		return c.Redirect(http.StatusSeeOther, listURL(adminsPath, params))
	}

	if err := h.Admins.EnsureLoaded(ctx, fetch); err != nil && !h.Admins.Loaded() {
		metrics.ListRefreshesTotal.WithLabelValues("admins", "failure").Inc()
		return h.RenderPage(c, "admins", viewmodels.AdminsViewData{
			Layout:       h.LayoutData(c, "Settings"),
			Table:        viewmodels.TableData{RefreshHref: refreshURL(adminsPath, params)},
			ErrorMessage: err.Error(),
		})
	}

	layout := h.LayoutData(c, "Settings")
	if msg := h.Admins.LastError(); msg != "" {
		layout.Banner = msg + " — showing previously loaded data."
	}

	view := h.Admins.View(params)
	rows := make([]viewmodels.AdminRow, 0, len(view.Items))
	for _, record := range view.Items {
		rows = append(rows, viewmodels.AdminRow{
			Record:  record,
			Pending: h.Admins.Pending(record.ID),
		})
	}
	return h.RenderPage(c, "admins", viewmodels.AdminsViewData{
		Layout: layout,
		Table:  buildTable(adminsPath, params, view, adminColumns),
		Rows:   rows,
	})
}

// HandleAdminInvite sends an invitation and invalidates the held collection:
// the new admin's id is assigned upstream, so the next render refetches
// instead of patching locally.
func (h *Handlers) HandleAdminInvite(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))

	if email == "" || !strings.Contains(email, "@") {
		setFlashToast(c, viewmodels.ToastViewData{
			Category: "error",
			Title:    "Invalid email",
			Description: "Enter the email address to invite.",
		})
		return c.Redirect(http.StatusSeeOther, adminsPath)
	}

	if err := h.API.InviteAdmin(ctx, principal.AccessToken, email); err != nil {
		metrics.RowMutationsTotal.WithLabelValues("admins", "invite", "failure").Inc()
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    "error",
			Title:       "Could not send the invitation",
			Description: yefeapi.Message(err, ""),
		})
		return c.Redirect(http.StatusSeeOther, adminsPath)
	}

	metrics.RowMutationsTotal.WithLabelValues("admins", "invite", "success").Inc()
	h.Admins.Invalidate()
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Invitation sent",
		Description: "We emailed " + email + " a link to set their password.",
	})
	return c.Redirect(http.StatusSeeOther, adminsPath)
}

func (h *Handlers) HandleAdminDelete(c *echo.Context) error {
	principal, ok := authn.PrincipalFromContext(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/sign-in")
	}
	ctx := c.Request().Context()
	id := strings.TrimSpace(c.Param("id"))
	params := h.returnParams(c)

	err := h.Admins.Remove(ctx, id, func(ctx context.Context) error {
		return h.API.DeleteAdmin(ctx, principal.AccessToken, id)
	})
	h.flashMutation(c, "admins", "delete", err, "Admin removed", "Could not remove the admin")
	return c.Redirect(http.StatusSeeOther, listURL(adminsPath, params))
}
