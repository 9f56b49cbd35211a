package services

import (
	"context"
	"encoding/json"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/helpers"
	"github.com/prepsphere/backend/internal/pkg/logger"
)

// UserService defines account management operations
type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*models.User, error)
	List(ctx context.Context, role *models.RoleType, page, size int) (*dto.UserListResponse, error)
	SetRole(ctx context.Context, actorID, userID int64, role models.RoleType) error
	SetActive(ctx context.Context, actorID, userID int64, isActive bool) error
	ProvisionFromWebhook(ctx context.Context, event *dto.WebhookEvent) (*models.User, error)
}

type userServiceImpl struct {
	stores repositories.Stores
	uow    repositories.UnitOfWork
}

// NewUserService creates a new UserService
func NewUserService(stores repositories.Stores, uow repositories.UnitOfWork) UserService {
	return &userServiceImpl{stores: stores, uow: uow}
}

// GetByID returns a user by ID
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.stores.Users.GetByID(ctx, id)
}

// GetByEmail returns a user by email address
func (s *userServiceImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.stores.Users.GetByEmail(ctx, email)
}

// Update changes a user's own account details
func (s *userServiceImpl) Update(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.stores.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.stores.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns a page of users, optionally filtered by role
func (s *userServiceImpl) List(ctx context.Context, role *models.RoleType, page, size int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, err := s.stores.Users.List(ctx, role, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Users.Count(ctx, role)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserListResponse{
		Users:      make([]dto.UserResponse, 0, len(users)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.FromUser(u))
	}
	return resp, nil
}

// SetRole changes a user's role and records the change
func (s *userServiceImpl) SetRole(ctx context.Context, actorID, userID int64, role models.RoleType) error {
	if !role.IsValid() {
		return apperrors.ErrValidationFailed
	}

	return s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		if err := stores.Users.SetRole(ctx, userID, role); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"role": role})
		return stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &actorID,
			Action:     models.AuditActionUserRoleChange,
			EntityType: "user",
			EntityID:   &userID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		})
	})
}

// SetActive enables or disables an account
func (s *userServiceImpl) SetActive(ctx context.Context, actorID, userID int64, isActive bool) error {
	return s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		if err := stores.Users.SetActive(ctx, userID, isActive); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"isActive": isActive})
		return stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &actorID,
			Action:     models.AuditActionUserStatusChange,
			EntityType: "user",
			EntityID:   &userID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		})
	})
}

// ProvisionFromWebhook upserts a user from an identity-provider event,
// keyed by the provider's user id.
func (s *userServiceImpl) ProvisionFromWebhook(ctx context.Context, event *dto.WebhookEvent) (*models.User, error) {
	email := event.PrimaryEmail()
	if event.Data.ID == "" || email == "" {
		return nil, apperrors.ErrValidationFailed
	}

	user := &models.User{
		ExternalID: &event.Data.ID,
		Email:      email,
		FirstName:  event.Data.FirstName,
		LastName:   event.Data.LastName,
		Role:       models.RoleStudent,
	}

	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		if err := stores.Users.UpsertByExternalID(ctx, user); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"event": event.Type, "externalId": event.Data.ID})
		return stores.Audit.Create(ctx, &models.AuditLog{
			Action:     models.AuditActionUserProvision,
			EntityType: "user",
			EntityID:   &user.ID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Str("event", event.Type).Msg("User provisioned from webhook")
	return user, nil
}
