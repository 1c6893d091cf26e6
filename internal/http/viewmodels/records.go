package viewmodels

import (
	"strings"
	"time"

	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

// Display values for the held read-projections. Timestamps render once, at
// fetch time, the way the original console localized them.
const (
	recordDateLayout = "Jan 2, 2006"

	PlanFreeLabel = "Free"
	PlanPlusLabel = "Yefe+"

	StatusActiveLabel    = "Active"
	StatusSuspendedLabel = "Suspended"
	StatusInactiveLabel  = "Inactive"
)

// UserRecord is the users screen's held projection of an API user.
type UserRecord struct {
	ID        string
	Name      string
	Email     string
	Plan      string
	JoinDate  string
	LastLogin string
	Status    string
}

func UserRecordFrom(u yefeapi.User) UserRecord {
	return UserRecord{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Plan:      planLabel(u.PlanType),
		JoinDate:  u.CreatedAt.Format(recordDateLayout),
		LastLogin: lastLoginLabel(u.LastLogin),
		Status:    statusLabel(u.Status),
	}
}

// AdminRecord is the settings screen's held projection of an operator.
type AdminRecord struct {
	ID        string
	Name      string
	Email     string
	Role      string
	JoinDate  string
	LastLogin string
	Status    string
}

func AdminRecordFrom(a yefeapi.Admin) AdminRecord {
	role := strings.TrimSpace(a.Role)
	if role == "" {
		role = "Admin"
	}
	return AdminRecord{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      role,
		JoinDate:  a.CreatedAt.Format(recordDateLayout),
		LastLogin: lastLoginLabel(a.LastLogin),
		Status:    statusLabel(a.Status),
	}
}

func planLabel(planType string) string {
	if strings.EqualFold(strings.TrimSpace(planType), yefeapi.PlanFree) {
		return PlanFreeLabel
	}
	return PlanPlusLabel
}

func statusLabel(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case yefeapi.StatusSuspended:
		return StatusSuspendedLabel
	case "inactive":
		return StatusInactiveLabel
	default:
		return StatusActiveLabel
	}
}

func lastLoginLabel(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Never"
	}
	return t.Format(recordDateLayout)
}
