package domain

type AdminStats struct {
	PendingEvents      int `json:"pending_events"`
	TotalEvents        int `json:"total_events"`
	ActiveUsers        int `json:"active_users"`
	TotalPointsAwarded int `json:"total_points_awarded"`
}

// MonthlyTrendPoint carries one calendar month of activity. Months with no
// data are still present with zeros.
type MonthlyTrendPoint struct {
	Month  string `json:"month"` // "2006-01"
	Events int    `json:"events"`
	Points int    `json:"points"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// UncategorisedBucket aggregates events without a category.
const UncategorisedBucket = "Uncategorized"
