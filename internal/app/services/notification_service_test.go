package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

func notificationStores(users *mockUserRepo, notifications *mockNotificationRepo, audit *mockAuditRepo) repositories.Stores {
	if notifications == nil {
		notifications = &mockNotificationRepo{}
	}
	if audit == nil {
		audit = &mockAuditRepo{}
	}
	return repositories.Stores{
		Users:         users,
		Notifications: notifications,
		Audit:         audit,
	}
}

func TestSendNotificationByEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			if email != "jane@campus.edu" {
				t.Errorf("unexpected email lookup %q", email)
			}
			return &models.User{ID: 42, Email: email}, nil
		},
	}
	var created *models.Notification
	notifications := &mockNotificationRepo{
		createFn: func(_ context.Context, n *models.Notification) error {
			created = n
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
	stores := notificationStores(users, notifications, audit)
	svc := NewNotificationService(stores, &fakeUnitOfWork{stores: stores})

	ctx := helpers.WithClientIP(context.Background(), "203.0.113.9")
	got, err := svc.Send(ctx, 1, &dto.SendNotificationRequest{
		Email: strPtr("jane@campus.edu"),
		Title: "Document pending",
		Body:  "Please re-upload your marksheet.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("expected recipient 42, got %d", got.UserID)
	}
	if created == nil || created.SenderID == nil || *created.SenderID != 1 {
		t.Error("expected the sender to be recorded on the notification")
	}
	if created.Category != models.NotificationGeneral {
		t.Errorf("expected GENERAL category by default, got %s", created.Category)
	}
	if audited == nil || audited.Action != models.AuditActionNotificationSend {
		t.Fatal("expected a notification send audit entry")
	}
	if audited.IP == nil || *audited.IP != "203.0.113.9" {
		t.Error("expected the caller's IP on the audit entry")
	}
}

func TestSendNotificationByUserID(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.User, error) {
			if id != 42 {
				t.Errorf("unexpected user lookup %d", id)
			}
			return &models.User{ID: id}, nil
		},
	}
	stores := notificationStores(users, nil, nil)
	svc := NewNotificationService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.Send(context.Background(), 1, &dto.SendNotificationRequest{
		UserID:   int64Ptr(42),
		Title:    "Interview scheduled",
		Body:     "Acme Corp, Friday 10:00.",
		Category: "JOB",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != models.NotificationJob {
		t.Errorf("expected JOB category, got %s", got.Category)
	}
}

func TestSendNotificationRequiresRecipient(t *testing.T) {
	stores := notificationStores(&mockUserRepo{}, nil, nil)
	svc := NewNotificationService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Send(context.Background(), 1, &dto.SendNotificationRequest{
		Title: "Hello",
		Body:  "No recipient given.",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestSendNotificationUnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, apperrors.ErrUserNotFound
		},
	}
	stores := notificationStores(users, nil, nil)
	svc := NewNotificationService(stores, &fakeUnitOfWork{stores: stores})

	_, err := svc.Send(context.Background(), 1, &dto.SendNotificationRequest{
		Email: strPtr("nobody@campus.edu"),
		Title: "Hello",
		Body:  "Recipient does not exist.",
	})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestBroadcastRecordsSenderAndCount(t *testing.T) {
	var sentBy *int64
	notifications := &mockNotificationRepo{
		broadcastFn: func(_ context.Context, _, _ string, _ models.NotificationCategory, sender *int64, _ repositories.BroadcastFilter) (int64, error) {
			sentBy = sender
			return 37, nil
		},
	}
	var audited *models.AuditLog
	audit := &mockAuditRepo{
		createFn: func(_ context.Context, entry *models.AuditLog) error {
			audited = entry
			return nil
		},
	}
	stores := notificationStores(&mockUserRepo{}, notifications, audit)
	svc := NewNotificationService(stores, &fakeUnitOfWork{stores: stores})

	recipients, err := svc.Broadcast(context.Background(), 1, &dto.BroadcastRequest{
		Title: "Placement drive",
		Body:  "Registrations open Monday.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipients != 37 {
		t.Errorf("expected 37 recipients, got %d", recipients)
	}
	if sentBy == nil || *sentBy != 1 {
		t.Error("expected the broadcast sender to be recorded")
	}
	if audited == nil || audited.Action != models.AuditActionBroadcast {
		t.Error("expected a broadcast audit entry")
	}
}
