package repositories

import (
	"context"
	"fmt"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
)

// AnalyticsRepository runs aggregate reporting queries
type AnalyticsRepository struct {
	db db.DBTX
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db db.DBTX) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) countQuery(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error running count query: %w", err)
	}
	return count, nil
}

// CountStudents counts active student accounts
func (r *AnalyticsRepository) CountStudents(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM users WHERE role = 'STUDENT' AND is_active = TRUE`)
}

// CountProfilesByApproval counts profiles in a given review state
func (r *AnalyticsRepository) CountProfilesByApproval(ctx context.Context, status models.ApprovalStatus) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM profiles WHERE approval_status = $1`, status)
}

// CountPlacedStudents counts placed students
func (r *AnalyticsRepository) CountPlacedStudents(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM profiles WHERE placement_status = 'PLACED'`)
}

// CountOpenJobs counts open job postings
func (r *AnalyticsRepository) CountOpenJobs(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM jobs WHERE status = 'OPEN'`)
}

// CountApplications counts all job applications
func (r *AnalyticsRepository) CountApplications(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM job_applications`)
}

// CountUpcomingEvents counts scheduled events that have not started yet
func (r *AnalyticsRepository) CountUpcomingEvents(ctx context.Context) (int64, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM events WHERE status = 'SCHEDULED' AND starts_at > NOW()`)
}

// PlacementsByYear groups placed students by graduation year
func (r *AnalyticsRepository) PlacementsByYear(ctx context.Context) (map[int]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT graduation_year, COUNT(*)
		FROM profiles
		WHERE placement_status = 'PLACED' AND graduation_year IS NOT NULL
		GROUP BY graduation_year
		ORDER BY graduation_year`)
	if err != nil {
		return nil, fmt.Errorf("error grouping placements by year: %w", err)
	}
	defer rows.Close()

	result := make(map[int]int64)
	for rows.Next() {
		var year int
		var count int64
		if err := rows.Scan(&year, &count); err != nil {
			return nil, fmt.Errorf("error scanning placement group: %w", err)
		}
		result[year] = count
	}
	return result, rows.Err()
}

// ApplicationsByStatus groups job applications by review status
func (r *AnalyticsRepository) ApplicationsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*)
		FROM job_applications
		GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error grouping applications by status: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning application group: %w", err)
		}
		result[status] = count
	}
	return result, rows.Err()
}
