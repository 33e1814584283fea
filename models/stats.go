package models

// DashboardStats is the operator dashboard summary.
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalMemberships  int64 `json:"totalMemberships"`
	ActiveMemberships int64 `json:"activeMemberships"`
	PendingRequests   int64 `json:"pendingRequests"`
	TotalDestinations int64 `json:"totalDestinations"`
}
