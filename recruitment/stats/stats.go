package stats

import "context"

// Statistics are the aggregate counts shown on the landing page
type Statistics struct {
	TotalActiveJobs   int `json:"total_active_jobs" db:"total_active_jobs"`
	TotalCompanies    int `json:"total_companies" db:"total_companies"`
	TotalApplications int `json:"total_applications" db:"total_applications"`
	TotalCategories   int `json:"total_categories" db:"total_categories"`
}

// Repository computes fresh counts
type Repository interface {
	Count(ctx context.Context) (*Statistics, error)
}
