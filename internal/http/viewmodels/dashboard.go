package viewmodels

import (
	"fmt"
	"math"
	"strings"

	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

// StatCard is one metric tile on the dashboard and analytics pages.
type StatCard struct {
	Title       string
	Value       string
	Change      string
	Trend       string // "up", "down", "flat"
	Description string
}

type ActivityItem struct {
	Type        string
	User        string
	Description string
	TimeAgo     string
}

type InsightItem struct {
	Label string
	Value string
}

type RegistrationRow struct {
	Month    string
	Count    int64
	BarWidth int // percentage of the widest month
}

type DashboardViewData struct {
	Layout       LayoutData
	Stats        []StatCard
	Activity     []ActivityItem
	Insights     []InsightItem
	LastUpdated  string
	ErrorMessage string
}

type AnalyticsViewData struct {
	Layout        LayoutData
	Stats         []StatCard
	Registrations []RegistrationRow
	LastUpdated   string
	ErrorMessage  string
}

// MetricCard formats one API metric into a tile. The change renders as a
// signed percentage with one decimal, "0.0%" when the period was flat.
func MetricCard(title, description string, m yefeapi.Metric) StatCard {
	return StatCard{
		Title:       title,
		Value:       formatCount(m.Value),
		Change:      formatChange(m),
		Trend:       trendOf(m),
		Description: description,
	}
}

func formatChange(m yefeapi.Metric) string {
	pct := math.Abs(m.Change) * 100
	switch strings.ToLower(strings.TrimSpace(m.ChangeType)) {
	case "increase":
		return fmt.Sprintf("+%.1f%%", pct)
	case "decrease":
		return fmt.Sprintf("-%.1f%%", pct)
	default:
		return "0.0%"
	}
}

func trendOf(m yefeapi.Metric) string {
	switch strings.ToLower(strings.TrimSpace(m.ChangeType)) {
	case "increase":
		return "up"
	case "decrease":
		return "down"
	default:
		return "flat"
	}
}

func formatCount(v float64) string {
	return formatInt(int64(math.Round(v)))
}

// formatInt groups thousands with commas, the way the original console
// localized counters.
func formatInt(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// DashboardStats builds the two headline tiles.
func DashboardStats(d yefeapi.Dashboard) []StatCard {
	return []StatCard{
		MetricCard("Total Users", "vs last month", d.TotalUsers),
		MetricCard("Premium Subscribers", "vs last month", d.PremiumSubscribers),
	}
}

func DashboardActivity(d yefeapi.Dashboard) []ActivityItem {
	items := make([]ActivityItem, 0, len(d.RecentActivity))
	for _, a := range d.RecentActivity {
		items = append(items, ActivityItem{
			Type:        a.Type,
			User:        a.User,
			Description: string(a.Description),
			TimeAgo:     a.TimeAgo,
		})
	}
	return items
}

// DashboardInsights renders the quick-insight rows. The conversion rate
// arrives from the API already scaled to a percentage.
func DashboardInsights(d yefeapi.Dashboard) []InsightItem {
	return []InsightItem{
		{Label: "Premium conversion rate", Value: fmt.Sprintf("%.1f%%", d.QuickInsights.PremiumConversionRate)},
		{Label: "Active users today", Value: formatInt(d.QuickInsights.ActiveUsersToday)},
		{Label: "Pending invitations", Value: formatInt(d.QuickInsights.PendingInvitations)},
	}
}

// AnalyticsStats adds the conversion-rate tile to the headline metrics.
func AnalyticsStats(d yefeapi.Dashboard) []StatCard {
	stats := DashboardStats(d)
	stats = append(stats, StatCard{
		Title:       "Conversion Rate",
		Value:       fmt.Sprintf("%.1f%%", d.QuickInsights.PremiumConversionRate),
		Change:      "0.0%",
		Trend:       "flat",
		Description: "free to premium",
	})
	return stats
}

// RegistrationRows scales each month against the busiest one so the template
// can draw proportional bars.
func RegistrationRows(d yefeapi.Dashboard) []RegistrationRow {
	var max int64
	for _, m := range d.MonthlyRegistrations {
		if m.Count > max {
			max = m.Count
		}
	}
	rows := make([]RegistrationRow, 0, len(d.MonthlyRegistrations))
	for _, m := range d.MonthlyRegistrations {
		width := 0
		if max > 0 {
			width = int(math.Round(float64(m.Count) / float64(max) * 100))
		}
		rows = append(rows, RegistrationRow{Month: m.Month, Count: m.Count, BarWidth: width})
	}
	return rows
}
