package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/dberrors"
)

// JobRepository handles job posting and application database operations
type JobRepository struct {
	db db.DBTX
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db db.DBTX) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, title, company, description, location, package, min_cgpa, eligibility,
	deadline, status, created_by, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Description, &j.Location, &j.Package, &j.MinCGPA,
		&j.Eligibility, &j.Deadline, &j.Status, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error scanning job: %w", err)
	}
	return j, nil
}

// Create creates a job posting
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO jobs (title, company, description, location, package, min_cgpa, eligibility, deadline, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at, updated_at`,
		job.Title, job.Company, job.Description, job.Location, job.Package, job.MinCGPA,
		job.Eligibility, job.Deadline, job.CreatedBy).
		Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// Update rewrites a job posting
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET title = $1, company = $2, description = $3, location = $4, package = $5,
		    min_cgpa = $6, eligibility = $7, deadline = $8, status = $9, updated_at = NOW()
		WHERE id = $10`,
		job.Title, job.Company, job.Description, job.Location, job.Package,
		job.MinCGPA, job.Eligibility, job.Deadline, job.Status, job.ID)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// List returns jobs matching the filter, newest first
func (r *JobRepository) List(ctx context.Context, filter JobListFilter, offset uint64, limit int) ([]*models.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR company ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4`,
		filter.Status, filter.Company, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Count counts jobs matching the filter
func (r *JobRepository) Count(ctx context.Context, filter JobListFilter) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM jobs
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR company ILIKE '%' || $2 || '%')`,
		filter.Status, filter.Company).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting jobs: %w", err)
	}
	return count, nil
}

// CreateApplication inserts a job application. A duplicate application for
// the same job maps to ErrAlreadyApplied.
func (r *JobRepository) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO job_applications (job_id, user_id)
		VALUES ($1, $2)
		RETURNING id, status, applied_at, updated_at`,
		app.JobID, app.UserID).
		Scan(&app.ID, &app.Status, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyApplied
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

func scanApplication(row pgx.Row) (*models.JobApplication, error) {
	a := &models.JobApplication{}
	err := row.Scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error scanning application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application by job and user
func (r *JobRepository) GetApplication(ctx context.Context, jobID, userID int64) (*models.JobApplication, error) {
	return scanApplication(r.db.QueryRow(ctx, `
		SELECT id, job_id, user_id, status, applied_at, updated_at
		FROM job_applications
		WHERE job_id = $1 AND user_id = $2`,
		jobID, userID))
}

// GetApplicationByID retrieves an application by ID
func (r *JobRepository) GetApplicationByID(ctx context.Context, id int64) (*models.JobApplication, error) {
	return scanApplication(r.db.QueryRow(ctx, `
		SELECT id, job_id, user_id, status, applied_at, updated_at
		FROM job_applications
		WHERE id = $1`, id))
}

// UpdateApplicationStatus moves an application through review
func (r *JobRepository) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// ListApplicationsByJob returns a job's applications with applicant details
func (r *JobRepository) ListApplicationsByJob(ctx context.Context, jobID int64, offset uint64, limit int) ([]*models.JobApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.job_id, a.user_id, a.status, a.applied_at, a.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.role, u.is_active
		FROM job_applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC
		OFFSET $2 LIMIT $3`,
		jobID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.JobApplication
	for rows.Next() {
		a := &models.JobApplication{User: &models.User{}}
		err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.Status, &a.AppliedAt, &a.UpdatedAt,
			&a.User.ID, &a.User.Email, &a.User.FirstName, &a.User.LastName,
			&a.User.Role, &a.User.IsActive)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// CountApplicationsByJob counts a job's applications
func (r *JobRepository) CountApplicationsByJob(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, jobID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}
	return count, nil
}

// ListApplicationsByUser returns a student's applications with job details
func (r *JobRepository) ListApplicationsByUser(ctx context.Context, userID int64) ([]*models.JobApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.job_id, a.user_id, a.status, a.applied_at, a.updated_at,
		       j.id, j.title, j.company, j.description, j.location, j.package, j.min_cgpa,
		       j.eligibility, j.deadline, j.status, j.created_by, j.created_at, j.updated_at
		FROM job_applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.JobApplication
	for rows.Next() {
		a := &models.JobApplication{Job: &models.Job{}}
		err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.Status, &a.AppliedAt, &a.UpdatedAt,
			&a.Job.ID, &a.Job.Title, &a.Job.Company, &a.Job.Description, &a.Job.Location,
			&a.Job.Package, &a.Job.MinCGPA, &a.Job.Eligibility, &a.Job.Deadline,
			&a.Job.Status, &a.Job.CreatedBy, &a.Job.CreatedAt, &a.Job.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning user application row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
