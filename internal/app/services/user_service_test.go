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

func webhookEvent(externalID, email string) *dto.WebhookEvent {
	event := &dto.WebhookEvent{Type: "user.created"}
	event.Data.ID = externalID
	event.Data.FirstName = "Priya"
	event.Data.LastName = "Sharma"
	if email != "" {
		event.Data.EmailAddresses = []dto.WebhookEmailAddress{{EmailAddress: email}}
	}
	return event
}

func TestProvisionFromWebhook(t *testing.T) {
	var audited *models.AuditLog
	users := &mockUserRepo{
		upsertExternalFn: func(_ context.Context, u *models.User) error {
			u.ID = 42
			return nil
		},
	}
	audit := &mockAuditRepo{
		createFn: func(_ context.Context, entry *models.AuditLog) error {
			audited = entry
			return nil
		},
	}
	stores := repositories.Stores{Users: users, Audit: audit}
	svc := NewUserService(stores, &fakeUnitOfWork{stores: stores})

	got, err := svc.ProvisionFromWebhook(context.Background(), webhookEvent("user_2abc", "priya@campus.edu"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "priya@campus.edu" {
		t.Errorf("unexpected email %q", got.Email)
	}
	if got.Role != models.RoleStudent {
		t.Errorf("expected STUDENT role, got %s", got.Role)
	}
	if got.ExternalID == nil || *got.ExternalID != "user_2abc" {
		t.Error("expected the provider id to be recorded")
	}
	if audited == nil || audited.Action != models.AuditActionUserProvision {
		t.Error("expected a provisioning audit entry")
	}
}

func TestProvisionFromWebhookRejectsIncompletePayload(t *testing.T) {
	stores := repositories.Stores{Users: &mockUserRepo{}, Audit: &mockAuditRepo{}}
	svc := NewUserService(stores, &fakeUnitOfWork{stores: stores})

	if _, err := svc.ProvisionFromWebhook(context.Background(), webhookEvent("", "priya@campus.edu")); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for a missing id, got %v", err)
	}
	if _, err := svc.ProvisionFromWebhook(context.Background(), webhookEvent("user_2abc", "")); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for a missing email, got %v", err)
	}
}

func TestSetRole(t *testing.T) {
	roleSet := false
	users := &mockUserRepo{
		setRoleFn: func(_ context.Context, userID int64, role models.RoleType) error {
			roleSet = userID == 42 && role == models.RoleTPO
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
	stores := repositories.Stores{Users: users, Audit: audit}
	svc := NewUserService(stores, &fakeUnitOfWork{stores: stores})

	if err := svc.SetRole(context.Background(), 1, 42, models.RoleTPO); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !roleSet {
		t.Error("expected the role to be persisted")
	}
	if audited == nil || audited.Action != models.AuditActionUserRoleChange {
		t.Error("expected a role change audit entry")
	}
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	stores := repositories.Stores{Users: &mockUserRepo{}, Audit: &mockAuditRepo{}}
	svc := NewUserService(stores, &fakeUnitOfWork{stores: stores})

	if err := svc.SetRole(context.Background(), 1, 42, models.RoleType("SUPERUSER")); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}
