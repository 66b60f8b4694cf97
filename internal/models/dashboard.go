package models

// DashboardCounts summarises the archive for the landing page.
type DashboardCounts struct {
	TotalEmployees    int64         `json:"total_employees"`
	ArchivedEmployees int64         `json:"archived_employees"`
	ActiveEmployees   int64         `json:"active_employees"`
	InactiveEmployees int64         `json:"inactive_employees"`
	TotalDocuments    int64         `json:"total_documents"`
	ExpiringSoon      int64         `json:"expiring_soon"`
	StatusBreakdown   []StatusCount `json:"status_breakdown"`
}

// StatusCount is the archive count per employee status.
type StatusCount struct {
	StatusID   int64  `db:"status_id" json:"status_id"`
	StatusName string `db:"status_name" json:"status_name"`
	Count      int64  `db:"cnt" json:"count"`
}
