package entity

// RoleCount is one slice of the role-distribution breakdown.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// DateCount is one day's activity total for the last-7-days chart.
type DateCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}
