package viewmodels

import (
	"testing"
	"time"

	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

func TestUserRecordFrom_FormatsDisplayFields(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	lastLogin := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
	record := UserRecordFrom(yefeapi.User{
		ID:        "u1",
		Name:      "Ann",
		Email:     "ann@x.com",
		PlanType:  "yefe_plus",
		Status:    "suspended",
		LastLogin: &lastLogin,
		CreatedAt: created,
	})

	if record.Plan != "Yefe+" {
		t.Fatalf("Plan = %q", record.Plan)
	}
	if record.Status != "Suspended" {
		t.Fatalf("Status = %q", record.Status)
	}
	if record.JoinDate != "Mar 15, 2026" {
		t.Fatalf("JoinDate = %q", record.JoinDate)
	}
	if record.LastLogin != "Aug 30, 2026" {
		t.Fatalf("LastLogin = %q", record.LastLogin)
	}
}

func TestUserRecordFrom_NilLastLoginRendersNever(t *testing.T) {
	t.Parallel()

	record := UserRecordFrom(yefeapi.User{ID: "u1", PlanType: "free", Status: "active"})
	if record.LastLogin != "Never" {
		t.Fatalf("LastLogin = %q, want Never", record.LastLogin)
	}
	if record.Plan != "Free" {
		t.Fatalf("Plan = %q", record.Plan)
	}
	if record.Status != "Active" {
		t.Fatalf("Status = %q", record.Status)
	}
}

func TestStatusLabel_DefaultsUnknownToActive(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":          "Active",
		"active":    "Active",
		"ACTIVE":    "Active",
		"suspended": "Suspended",
		"inactive":  "Inactive",
		"pending":   "Active",
	}
	for in, want := range cases {
		if got := statusLabel(in); got != want {
			t.Fatalf("statusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		metric yefeapi.Metric
		want   string
	}{
		{yefeapi.Metric{Change: 0.052, ChangeType: "increase"}, "+5.2%"},
		{yefeapi.Metric{Change: 0.018, ChangeType: "decrease"}, "-1.8%"},
		{yefeapi.Metric{Change: -0.03, ChangeType: "decrease"}, "-3.0%"},
		{yefeapi.Metric{Change: 0, ChangeType: "same"}, "0.0%"},
		{yefeapi.Metric{Change: 0.5, ChangeType: ""}, "0.0%"},
	}
	for _, tc := range cases {
		if got := formatChange(tc.metric); got != tc.want {
			t.Fatalf("formatChange(%+v) = %q, want %q", tc.metric, got, tc.want)
		}
	}
}

func TestDashboardInsights_ConversionRateRendersAsSent(t *testing.T) {
	t.Parallel()

	// The API reports the rate already scaled to a percentage.
	items := DashboardInsights(yefeapi.Dashboard{
		QuickInsights: yefeapi.QuickInsights{PremiumConversionRate: 12.5},
	})
	if items[0].Value != "12.5%" {
		t.Fatalf("conversion rate = %q, want 12.5%%", items[0].Value)
	}
}

func TestAnalyticsStats_ConversionRateTile(t *testing.T) {
	t.Parallel()

	stats := AnalyticsStats(yefeapi.Dashboard{
		QuickInsights: yefeapi.QuickInsights{PremiumConversionRate: 26},
	})
	tile := stats[len(stats)-1]
	if tile.Title != "Conversion Rate" || tile.Value != "26.0%" {
		t.Fatalf("tile = %+v, want Conversion Rate 26.0%%", tile)
	}
}

func TestFormatInt_GroupsThousands(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-45678:   "-45,678",
	}
	for in, want := range cases {
		if got := formatInt(in); got != want {
			t.Fatalf("formatInt(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestRegistrationRows_ScaleAgainstBusiestMonth(t *testing.T) {
	t.Parallel()

	rows := RegistrationRows(yefeapi.Dashboard{
		MonthlyRegistrations: []yefeapi.MonthlyRegistration{
			{Month: "Jul", Count: 40},
			{Month: "Aug", Count: 80},
			{Month: "Sep", Count: 0},
		},
	})
	if rows[0].BarWidth != 50 || rows[1].BarWidth != 100 || rows[2].BarWidth != 0 {
		t.Fatalf("widths = %d/%d/%d, want 50/100/0", rows[0].BarWidth, rows[1].BarWidth, rows[2].BarWidth)
	}
}

func TestRegistrationRows_AllZeroMonths(t *testing.T) {
	t.Parallel()

	rows := RegistrationRows(yefeapi.Dashboard{
		MonthlyRegistrations: []yefeapi.MonthlyRegistration{{Month: "Jul", Count: 0}},
	})
	if rows[0].BarWidth != 0 {
		t.Fatalf("width = %d, want 0 without dividing by zero", rows[0].BarWidth)
	}
}
