package attachment

import (
	"context"

	"github.com/eujim/backend/internal/domain/attachment"
)

// DashboardStats holds the per-status counters shown above the dashboard table
type DashboardStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	InProgress int64 `json:"in_progress"`
	Rejected   int64 `json:"rejected"`
	Completed  int64 `json:"completed"`
}

// AnalyticsResponse holds the institution and gender breakdowns
type AnalyticsResponse struct {
	TotalStudents int64                        `json:"total_students"`
	Institutions  []attachment.InstitutionStat `json:"institutions"`
	Genders       []attachment.GenderStat      `json:"genders"`
}

// AnalyticsService computes dashboard counters and university analytics
type AnalyticsService struct {
	repo attachment.AttacheeRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(repo attachment.AttacheeRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// DashboardStats returns the per-status counts
func (s *AnalyticsService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Pending:    counts[attachment.StatusPending],
		Approved:   counts[attachment.StatusApproved],
		InProgress: counts[attachment.StatusInProgress],
		Rejected:   counts[attachment.StatusRejected],
		Completed:  counts[attachment.StatusCompleted],
	}
	stats.Total = stats.Pending + stats.Approved + stats.InProgress + stats.Rejected + stats.Completed
	return stats, nil
}

// UniversityAnalytics returns applicant counts by institution and gender
func (s *AnalyticsService) UniversityAnalytics(ctx context.Context) (*AnalyticsResponse, error) {
	institutions, err := s.repo.CountByInstitution(ctx)
	if err != nil {
		return nil, err
	}
	genders, err := s.repo.CountByGender(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, stat := range institutions {
		total += stat.StudentCount
	}

	return &AnalyticsResponse{
		TotalStudents: total,
		Institutions:  institutions,
		Genders:       genders,
	}, nil
}
