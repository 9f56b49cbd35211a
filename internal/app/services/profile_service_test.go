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

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func intPtr(i int) *int { return &i }

func float64Ptr(f float64) *float64 { return &f }

func profileStores(profiles *mockProfileRepo, notifications *mockNotificationRepo, audit *mockAuditRepo) repositories.Stores {
	if notifications == nil {
		notifications = &mockNotificationRepo{}
	}
	if audit == nil {
		audit = &mockAuditRepo{}
	}
	return repositories.Stores{
		Profiles:      profiles,
		Notifications: notifications,
		Audit:         audit,
	}
}

func TestProfileUpsertCreatesNewProfile(t *testing.T) {
	created := false
	versioned := false
	profiles := &mockProfileRepo{
		getByUserIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return nil, apperrors.ErrProfileNotFound
		},
		createFn: func(_ context.Context, p *models.Profile) error {
			created = true
			p.ID = 7
			p.Version = 1
			p.ApprovalStatus = models.ApprovalPending
			return nil
		},
		createVersionFn: func(_ context.Context, v *models.ProfileVersion) error {
			versioned = true
			if v.ProfileID != 7 || v.Version != 1 {
				t.Errorf("unexpected version row: profileID=%d version=%d", v.ProfileID, v.Version)
			}
			return nil
		},
	}
	stores := profileStores(profiles, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Upsert(context.Background(), 42, &dto.UpsertProfileRequest{
		Degree: "B.Tech",
		Branch: "Computer Science",
		Skills: "go,sql",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected profile to be created")
	}
	if !versioned {
		t.Error("expected a version snapshot to be written")
	}
	if got.UserID != 42 {
		t.Errorf("expected userID 42, got %d", got.UserID)
	}
}

func TestProfileUpsertNoChangeIsNoOp(t *testing.T) {
	existing := &models.Profile{
		ID:             7,
		UserID:         42,
		Degree:         "B.Tech",
		Branch:         "Computer Science",
		GraduationYear: intPtr(2026),
		CGPA:           float64Ptr(8.5),
		Skills:         "go,sql",
		ApprovalStatus: models.ApprovalApproved,
		Version:        3,
	}
	profiles := &mockProfileRepo{
		getByUserIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return existing, nil
		},
	}
	stores := profileStores(profiles, nil, nil)
	uow := &fakeUnitOfWork{stores: stores, err: errors.New("transaction must not run")}
	svc := NewProfileService(stores, uow)

	got, err := svc.Upsert(context.Background(), 42, &dto.UpsertProfileRequest{
		Degree:         "B.Tech",
		Branch:         "Computer Science",
		GraduationYear: intPtr(2026),
		CGPA:           float64Ptr(8.5),
		Skills:         "go,sql",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != existing {
		t.Error("expected the stored profile to be returned unchanged")
	}
	if got.Version != 3 {
		t.Errorf("expected version to stay at 3, got %d", got.Version)
	}
}

func TestProfileUpsertChangeUpdatesAndSnapshots(t *testing.T) {
	existing := &models.Profile{
		ID:             7,
		UserID:         42,
		Degree:         "B.Tech",
		Branch:         "Computer Science",
		Skills:         "go",
		ApprovalStatus: models.ApprovalApproved,
		Version:        3,
	}
	updated := false
	profiles := &mockProfileRepo{
		getByUserIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return existing, nil
		},
		updateFn: func(_ context.Context, p *models.Profile) error {
			updated = true
			p.Version = 4
			p.ApprovalStatus = models.ApprovalPending
			return nil
		},
		createVersionFn: func(_ context.Context, v *models.ProfileVersion) error {
			if v.Version != 4 {
				t.Errorf("expected snapshot at version 4, got %d", v.Version)
			}
			return nil
		},
	}
	stores := profileStores(profiles, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Upsert(context.Background(), 42, &dto.UpsertProfileRequest{
		Degree: "B.Tech",
		Branch: "Computer Science",
		Skills: "go,sql,kubernetes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected profile to be updated")
	}
	if got.ApprovalStatus != models.ApprovalPending {
		t.Errorf("expected approval to reset to pending, got %s", got.ApprovalStatus)
	}
}

func TestProfileReviewRejectRequiresReason(t *testing.T) {
	stores := profileStores(&mockProfileRepo{}, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Review(context.Background(), 1, 7, false, nil)
	if !errors.Is(err, apperrors.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	_, err = svc.Review(context.Background(), 1, 7, false, strPtr(""))
	if !errors.Is(err, apperrors.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired for empty reason, got %v", err)
	}
}

func TestProfileReviewInvalidTransition(t *testing.T) {
	profiles := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return &models.Profile{ID: 7, UserID: 42, ApprovalStatus: models.ApprovalApproved}, nil
		},
	}
	stores := profileStores(profiles, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Review(context.Background(), 1, 7, false, strPtr("incomplete marksheet"))
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestProfileReviewRejectNotifiesStudent(t *testing.T) {
	var notified *models.Notification
	profiles := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return &models.Profile{ID: 7, UserID: 42, ApprovalStatus: models.ApprovalPending}, nil
		},
		setApprovalFn: func(_ context.Context, _ int64, status models.ApprovalStatus, _ *string) error {
			if status != models.ApprovalRejected {
				t.Errorf("expected REJECTED, got %s", status)
			}
			return nil
		},
	}
	notifications := &mockNotificationRepo{
		createFn: func(_ context.Context, n *models.Notification) error {
			notified = n
			return nil
		},
	}
	var audited *models.AuditLog
	audit := &mockAuditRepo{
		createFn: func(_ context.Context, entry *models.AuditLog) error {
			audited = entry
			return nil
		},
	}
	stores := profileStores(profiles, notifications, audit)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Review(context.Background(), 1, 7, false, strPtr("incomplete marksheet"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ApprovalStatus != models.ApprovalRejected {
		t.Errorf("expected rejected profile, got %s", got.ApprovalStatus)
	}
	if notified == nil || notified.UserID != 42 {
		t.Fatal("expected the student to be notified")
	}
	if notified.Category != models.NotificationProfile {
		t.Errorf("expected PROFILE notification, got %s", notified.Category)
	}
	if notified.SenderID == nil || *notified.SenderID != 1 {
		t.Error("expected the reviewer recorded as sender")
	}
	if audited == nil || audited.Action != models.AuditActionProfileReject {
		t.Error("expected a profile reject audit entry")
	}
}

func TestUpdatePlacementForwardTransition(t *testing.T) {
	profiles := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return &models.Profile{ID: 7, UserID: 42, PlacementStatus: models.PlacementNotPlaced}, nil
		},
		setPlacementFn: func(_ context.Context, _ int64, status models.PlacementStatus, company *string, _ *float64, offerLetterURL *string) error {
			if status != models.PlacementPlaced {
				t.Errorf("expected PLACED, got %s", status)
			}
			if company == nil || *company != "Acme Corp" {
				t.Error("expected company to be set")
			}
			if offerLetterURL == nil || *offerLetterURL != "https://files.example.com/offers/42.pdf" {
				t.Error("expected the offer letter URL to be persisted")
			}
			return nil
		},
	}
	stores := profileStores(profiles, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.UpdatePlacement(context.Background(), 1, 7, &dto.UpdatePlacementRequest{
		Status:         "PLACED",
		Company:        strPtr("Acme Corp"),
		Package:        float64Ptr(12.5),
		OfferLetterURL: strPtr("https://files.example.com/offers/42.pdf"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PlacementStatus != models.PlacementPlaced {
		t.Errorf("expected PLACED, got %s", got.PlacementStatus)
	}
	if got.OfferLetterURL == nil || *got.OfferLetterURL != "https://files.example.com/offers/42.pdf" {
		t.Error("expected the offer letter URL on the updated profile")
	}
}

func TestUpdatePlacementOverrideNeedsJustification(t *testing.T) {
	profiles := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return &models.Profile{ID: 7, UserID: 42, PlacementStatus: models.PlacementPlaced}, nil
		},
	}
	stores := profileStores(profiles, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.UpdatePlacement(context.Background(), 1, 7, &dto.UpdatePlacementRequest{Status: "NOT_PLACED"})
	if !errors.Is(err, apperrors.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestUpdatePlacementOverrideWithJustification(t *testing.T) {
	var audited *models.AuditLog
	profiles := &mockProfileRepo{
		getByIDFn: func(_ context.Context, _ int64) (*models.Profile, error) {
			return &models.Profile{ID: 7, UserID: 42, PlacementStatus: models.PlacementPlaced}, nil
		},
		setPlacementFn: func(_ context.Context, _ int64, _ models.PlacementStatus, _ *string, _ *float64, _ *string) error {
			return nil
		},
	}
	audit := &mockAuditRepo{
		createFn: func(_ context.Context, entry *models.AuditLog) error {
			audited = entry
			return nil
		},
	}
	stores := profileStores(profiles, nil, audit)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.UpdatePlacement(context.Background(), 1, 7, &dto.UpdatePlacementRequest{
		Status:        "NOT_PLACED",
		Justification: strPtr("offer rescinded by employer"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audited == nil || audited.Action != models.AuditActionPlacementOverride {
		t.Error("expected a placement override audit entry")
	}
}

func TestUpdatePlacementInvalidStatus(t *testing.T) {
	stores := profileStores(&mockProfileRepo{}, nil, nil)
	svc := NewProfileService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.UpdatePlacement(context.Background(), 1, 7, &dto.UpdatePlacementRequest{Status: "HIRED"})
	if !errors.Is(err, apperrors.ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
}
