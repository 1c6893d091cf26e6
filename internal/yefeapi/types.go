package yefeapi

import (
	"encoding/json"
	"time"
)

// Statuses and plans as the API spells them on the wire.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"

	StatusVerbActivate = "active"
	StatusVerbSuspend  = "suspend"

	PlanFree = "free"
	PlanPlus = "yefe_plus"

	RoleAdmin = "admin"
)

// User is a member of the Yefe app as the admin API reports it.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	PlanType  string     `json:"plan_type"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Admin is a console operator account.
type Admin struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

// Tokens is the payload of login and refresh-token exchanges.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Account is the subset of /v1/me the console cares about.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"Name"`
	Role  string `json:"role"`
	Plan  string `json:"plan_type"`
}

type Metric struct {
	Value      float64 `json:"value"`
	Change     float64 `json:"change"`
	ChangeType string  `json:"changeType"` // "increase", "decrease", "same"
}

type Activity struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	User        string      `json:"user"`
	Description Description `json:"description"`
	TimeAgo     string      `json:"timeAgo"`
}

// Description tolerates both a bare string and an object with a message field,
// which the dashboard endpoint mixes freely.
type Description string

func (d *Description) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*d = Description(s)
		return nil
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		*d = Description(obj.Message)
		return nil
	}
	*d = "Activity logged"
	return nil
}

type QuickInsights struct {
	PremiumConversionRate float64 `json:"premiumConversionRate"`
	ActiveUsersToday      int64   `json:"activeUsersToday"`
	PendingInvitations    int64   `json:"pendingInvitations"`
}

type MonthlyRegistration struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Dashboard is /v1/dashboard's data payload. The registrations key is
// misspelled on the wire; the tag matches what the API actually serves.
type Dashboard struct {
	TotalUsers           Metric                `json:"totalUsers"`
	PremiumSubscribers   Metric                `json:"premiumSubscribers"`
	RecentActivity       []Activity            `json:"recentActivity"`
	QuickInsights        QuickInsights         `json:"quickInsights"`
	LastUpdated          string                `json:"lastUpdated"`
	MonthlyRegistrations []MonthlyRegistration `json:"MonthleyRegistrations"`
}
