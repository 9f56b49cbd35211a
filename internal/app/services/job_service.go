package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/helpers"
	"github.com/prepsphere/backend/internal/pkg/logger"
	"github.com/prepsphere/backend/internal/pkg/metrics"
)

// JobService defines job board operations
type JobService interface {
	Create(ctx context.Context, creatorID int64, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	Update(ctx context.Context, actorID, jobID int64, req *dto.UpdateJobRequest) (*models.Job, error)
	List(ctx context.Context, filter repositories.JobListFilter, page, size int) (*dto.JobListResponse, error)
	Apply(ctx context.Context, userID, jobID int64) (*models.JobApplication, error)
	MyApplications(ctx context.Context, userID int64) ([]*models.JobApplication, error)
	ListApplications(ctx context.Context, jobID int64, page, size int) (*dto.ApplicationListResponse, error)
	UpdateApplicationStatus(ctx context.Context, actorID, applicationID int64, status models.ApplicationStatus) (*models.JobApplication, error)
}

type jobServiceImpl struct {
	stores repositories.Stores
	uow    repositories.UnitOfWork
}

// NewJobService creates a new JobService
func NewJobService(stores repositories.Stores, uow repositories.UnitOfWork) JobService {
	return &jobServiceImpl{stores: stores, uow: uow}
}

// Create creates a job posting
func (s *jobServiceImpl) Create(ctx context.Context, creatorID int64, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Package:     req.Package,
		MinCGPA:     req.MinCGPA,
		Eligibility: req.Eligibility,
		Deadline:    req.Deadline,
		CreatedBy:   &creatorID,
	}
	if err := s.stores.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.Info().Int64("job_id", job.ID).Str("company", job.Company).Msg("Job posted")
	return job, nil
}

// GetByID returns a job by ID
func (s *jobServiceImpl) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	return s.stores.Jobs.GetByID(ctx, id)
}

// Update rewrites a job posting, validating any status change
func (s *jobServiceImpl) Update(ctx context.Context, actorID, jobID int64, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.stores.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		target := models.JobStatus(req.Status)
		if target != job.Status && !job.Status.CanTransitionTo(target) {
			return nil, apperrors.ErrInvalidTransition
		}
		job.Status = target
	}

	job.Title = req.Title
	job.Company = req.Company
	job.Description = req.Description
	job.Location = req.Location
	job.Package = req.Package
	job.MinCGPA = req.MinCGPA
	job.Eligibility = req.Eligibility
	job.Deadline = req.Deadline

	if err := s.stores.Jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// List returns a page of jobs
func (s *jobServiceImpl) List(ctx context.Context, filter repositories.JobListFilter, page, size int) (*dto.JobListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	jobs, err := s.stores.Jobs.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Jobs.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.JobListResponse{
		Jobs:       make([]dto.JobResponse, 0, len(jobs)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, dto.FromJob(j))
	}
	return resp, nil
}

// Apply submits an application. Job existence, open status, the duplicate
// check and the audit entry all run in one transaction.
func (s *jobServiceImpl) Apply(ctx context.Context, userID, jobID int64) (*models.JobApplication, error) {
	var result *models.JobApplication
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		job, err := stores.Jobs.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		if job.Status == models.JobStatusClosed {
			return apperrors.ErrJobClosed
		}

		app := &models.JobApplication{JobID: jobID, UserID: userID}
		if err := stores.Jobs.CreateApplication(ctx, app); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"jobId": jobID, "company": job.Company})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &userID,
			Action:     models.AuditActionApplyJob,
			EntityType: "job_application",
			EntityID:   &app.ID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		app.Job = job
		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.JobApplications.Inc()
	logger.Info().Int64("user_id", userID).Int64("job_id", jobID).Msg("Job application submitted")
	return result, nil
}

// MyApplications returns the caller's applications with job details
func (s *jobServiceImpl) MyApplications(ctx context.Context, userID int64) ([]*models.JobApplication, error) {
	return s.stores.Jobs.ListApplicationsByUser(ctx, userID)
}

// ListApplications returns a page of a job's applications
func (s *jobServiceImpl) ListApplications(ctx context.Context, jobID int64, page, size int) (*dto.ApplicationListResponse, error) {
	if _, err := s.stores.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	apps, err := s.stores.Jobs.ListApplicationsByJob(ctx, jobID, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Jobs.CountApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		Pagination:   helpers.NewPaginationInfo(total, page, limit),
	}
	for _, a := range apps {
		resp.Applications = append(resp.Applications, dto.FromApplication(a))
	}
	return resp, nil
}

// UpdateApplicationStatus moves an application through review and notifies
// the applicant in the same transaction.
func (s *jobServiceImpl) UpdateApplicationStatus(ctx context.Context, actorID, applicationID int64, status models.ApplicationStatus) (*models.JobApplication, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrValidationFailed
	}

	var result *models.JobApplication
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		app, err := stores.Jobs.GetApplicationByID(ctx, applicationID)
		if err != nil {
			return err
		}

		if app.Status != status && !app.Status.CanTransitionTo(status) {
			return apperrors.ErrInvalidTransition
		}

		if err := stores.Jobs.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
			return err
		}
		app.Status = status

		job, err := stores.Jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return err
		}

		if err := stores.Notifications.Create(ctx, &models.Notification{
			UserID:   app.UserID,
			Title:    "Application update",
			Body:     fmt.Sprintf("Your application for %s at %s is now %s.", job.Title, job.Company, status),
			Category: models.NotificationJob,
			SenderID: &actorID,
		}); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"status": status})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &actorID,
			Action:     models.AuditActionApplicationUpdate,
			EntityType: "job_application",
			EntityID:   &applicationID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		app.Job = job
		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
