package stats

// Totals are platform-wide row counts for the admin dashboard.
type Totals struct {
	Users                 int64 `json:"users"`
	ActiveUsers           int64 `json:"active_users"`
	Projects              int64 `json:"projects"`
	ActiveProjects        int64 `json:"active_projects"`
	Requirements          int64 `json:"requirements"`
	CompletedRequirements int64 `json:"completed_requirements"`
	Comments              int64 `json:"comments"`
	Supports              int64 `json:"supports"`
}

// DailyCount holds what was created on one UTC day.
type DailyCount struct {
	Day          string `json:"day" example:"2025-03-01"`
	Users        int64  `json:"users"`
	Requirements int64  `json:"requirements"`
	Comments     int64  `json:"comments"`
	Supports     int64  `json:"supports"`
}

type Dashboard struct {
	Totals
	RequirementsByStatus map[string]int64 `json:"requirements_by_status"`
	Daily                []DailyCount     `json:"daily"`
}

// UserStats summarizes one member's activity.
type UserStats struct {
	Projects              int64 `json:"projects"`
	Requirements          int64 `json:"requirements"`
	CompletedRequirements int64 `json:"completed_requirements"`
	Comments              int64 `json:"comments"`
	SupportsGiven         int64 `json:"supports_given"`
	SupportsReceived      int64 `json:"supports_received"`
	UnreadNotifications   int64 `json:"unread_notifications"`
}
