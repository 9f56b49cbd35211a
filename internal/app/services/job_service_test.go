package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
)

func jobStores(jobs *mockJobRepo, notifications *mockNotificationRepo) repositories.Stores {
	if notifications == nil {
		notifications = &mockNotificationRepo{}
	}
	return repositories.Stores{
		Jobs:          jobs,
		Notifications: notifications,
		Audit:         &mockAuditRepo{},
	}
}

func TestJobApply(t *testing.T) {
	jobs := &mockJobRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Job, error) {
			return &models.Job{ID: 3, Company: "Acme Corp", Status: models.JobStatusOpen}, nil
		},
		createApplicationFn: func(_ context.Context, app *models.JobApplication) error {
			app.ID = 11
			app.Status = models.ApplicationPending
			return nil
		},
	}
	stores := jobStores(jobs, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Apply(context.Background(), 42, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.ApplicationPending {
		t.Errorf("expected PENDING, got %s", got.Status)
	}
	if got.Job == nil || got.Job.Company != "Acme Corp" {
		t.Error("expected the job to be attached to the application")
	}
}

func TestJobApplyClosedJob(t *testing.T) {
	jobs := &mockJobRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Job, error) {
			return &models.Job{ID: 3, Status: models.JobStatusClosed}, nil
		},
	}
	stores := jobStores(jobs, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.Apply(context.Background(), 42, 3); !errors.Is(err, apperrors.ErrJobClosed) {
		t.Fatalf("expected ErrJobClosed, got %v", err)
	}
}

func TestJobApplyDuplicate(t *testing.T) {
	jobs := &mockJobRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Job, error) {
			return &models.Job{ID: 3, Status: models.JobStatusOpen}, nil
		},
		createApplicationFn: func(_ context.Context, _ *models.JobApplication) error {
			return apperrors.ErrAlreadyApplied
		},
	}
	stores := jobStores(jobs, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.Apply(context.Background(), 42, 3); !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestJobApplyMissingJob(t *testing.T) {
	jobs := &mockJobRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Job, error) {
			return nil, apperrors.ErrJobNotFound
		},
	}
	stores := jobStores(jobs, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.Apply(context.Background(), 42, 3); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestUpdateApplicationStatusNotifiesApplicant(t *testing.T) {
	var notified *models.Notification
	jobs := &mockJobRepo{
		getApplicationFn: func(_ context.Context, _ int64) (*models.JobApplication, error) {
			return &models.JobApplication{ID: 11, JobID: 3, UserID: 42, Status: models.ApplicationPending}, nil
		},
		updateApplicationFn: func(_ context.Context, _ int64, status models.ApplicationStatus) error {
			if status != models.ApplicationShortlisted {
				t.Errorf("expected SHORTLISTED, got %s", status)
			}
			return nil
		},
		getByIDFn: func(_ context.Context, _ int64) (*models.Job, error) {
			return &models.Job{ID: 3, Title: "Backend Engineer", Company: "Acme Corp", Status: models.JobStatusOpen}, nil
		},
	}
	notifications := &mockNotificationRepo{
		createFn: func(_ context.Context, n *models.Notification) error {
			notified = n
			return nil
		},
	}
	stores := jobStores(jobs, notifications)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.UpdateApplicationStatus(context.Background(), 1, 11, models.ApplicationShortlisted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.ApplicationShortlisted {
		t.Errorf("expected SHORTLISTED, got %s", got.Status)
	}
	if notified == nil || notified.UserID != 42 {
		t.Fatal("expected the applicant to be notified")
	}
	if notified.Category != models.NotificationJob {
		t.Errorf("expected JOB notification, got %s", notified.Category)
	}
}

func TestUpdateApplicationStatusInvalidTransition(t *testing.T) {
	jobs := &mockJobRepo{
		getApplicationFn: func(_ context.Context, _ int64) (*models.JobApplication, error) {
			return &models.JobApplication{ID: 11, Status: models.ApplicationSelected}, nil
		},
	}
	stores := jobStores(jobs, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.UpdateApplicationStatus(context.Background(), 1, 11, models.ApplicationPending)
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateApplicationStatusUnknownStatus(t *testing.T) {
	stores := jobStores(&mockJobRepo{}, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.UpdateApplicationStatus(context.Background(), 1, 11, models.ApplicationStatus("HIRED"))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestJobUpdateInvalidStatusTransition(t *testing.T) {
	jobs := &mockJobRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Job, error) {
			return &models.Job{ID: 3, Status: models.JobStatusOpen}, nil
		},
	}
	stores := jobStores(jobs, nil)
	svc := NewJobService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Update(context.Background(), 1, 3, &dto.UpdateJobRequest{Title: "x", Company: "y", Status: "DRAFT"})
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
