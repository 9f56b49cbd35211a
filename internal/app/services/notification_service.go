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
	"github.com/prepsphere/backend/internal/pkg/metrics"
)

// NotificationService defines notification operations
type NotificationService interface {
	List(ctx context.Context, userID int64, page, size int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Send(ctx context.Context, actorID int64, req *dto.SendNotificationRequest) (*models.Notification, error)
	Broadcast(ctx context.Context, actorID int64, req *dto.BroadcastRequest) (int64, error)
}

type notificationServiceImpl struct {
	stores repositories.Stores
	uow    repositories.UnitOfWork
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(stores repositories.Stores, uow repositories.UnitOfWork) NotificationService {
	return &notificationServiceImpl{stores: stores, uow: uow}
}

// List returns a page of the caller's notifications with the unread count
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, page, size int) (*dto.NotificationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	notifications, err := s.stores.Notifications.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Notifications.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.stores.Notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
		Pagination:    helpers.NewPaginationInfo(total, page, limit),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.FromNotification(n))
	}
	return resp, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.stores.Notifications.MarkRead(ctx, userID, notificationID)
}

// MarkAllRead marks all of the caller's notifications as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.stores.Notifications.MarkAllRead(ctx, userID)
}

// Send delivers a notification to a single user and audits the send in one
// transaction. The recipient is addressed by user id, or looked up by email
// when no id is given.
func (s *notificationServiceImpl) Send(ctx context.Context, actorID int64, req *dto.SendNotificationRequest) (*models.Notification, error) {
	category := models.NotificationGeneral
	if req.Category != "" {
		category = models.NotificationCategory(req.Category)
	}

	var result *models.Notification
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		var recipient *models.User
		var err error
		switch {
		case req.UserID != nil:
			recipient, err = stores.Users.GetByID(ctx, *req.UserID)
		case req.Email != nil:
			recipient, err = stores.Users.GetByEmail(ctx, *req.Email)
		default:
			return apperrors.ErrValidationFailed
		}
		if err != nil {
			return err
		}

		notification := &models.Notification{
			UserID:   recipient.ID,
			Title:    req.Title,
			Body:     req.Body,
			Category: category,
			SenderID: &actorID,
		}
		if err := stores.Notifications.Create(ctx, notification); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{
			"title":    req.Title,
			"category": category,
		})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &actorID,
			Action:     models.AuditActionNotificationSend,
			EntityType: "notification",
			EntityID:   &notification.ID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		result = notification
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.NotificationsSent.Inc()
	logger.Info().Int64("actor_id", actorID).Int64("recipient_id", result.UserID).Msg("Notification sent")
	return result, nil
}

// Broadcast fans a notification out to active students matching the filter
// and audits the send, both in one transaction.
func (s *notificationServiceImpl) Broadcast(ctx context.Context, actorID int64, req *dto.BroadcastRequest) (int64, error) {
	var recipients int64
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		filter := repositories.BroadcastFilter{
			Degree:         req.Degree,
			GraduationYear: req.GraduationYear,
		}

		count, err := stores.Notifications.Broadcast(ctx, req.Title, req.Body, models.NotificationGeneral, &actorID, filter)
		if err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{
			"title":          req.Title,
			"degree":         req.Degree,
			"graduationYear": req.GraduationYear,
			"recipients":     count,
		})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &actorID,
			Action:     models.AuditActionBroadcast,
			EntityType: "notification",
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		recipients = count
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.NotificationsSent.Add(float64(recipients))
	logger.Info().Int64("actor_id", actorID).Int64("recipients", recipients).Msg("Broadcast sent")
	return recipients, nil
}
