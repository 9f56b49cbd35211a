package repositories

import (
	"context"
	"fmt"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db db.DBTX
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification for a single user
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, body, category, sent_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at`,
		notification.UserID, notification.Title, notification.Body, notification.Category,
		notification.SenderID).
		Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, body, category, sent_by, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`,
		userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Category, &n.SenderID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountByUser counts a user's notifications
func (r *NotificationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting notifications: %w", err)
	}
	return count, nil
}

// CountUnread counts a user's unread notifications
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one of the user's notifications as read. The user check
// keeps students from marking each other's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

// Broadcast fans a notification out to every active student matching the
// filter in a single INSERT..SELECT and returns the recipient count.
func (r *NotificationRepository) Broadcast(ctx context.Context, title, body string, category models.NotificationCategory, sentBy *int64, filter BroadcastFilter) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO notifications (user_id, title, body, category, sent_by)
		SELECT u.id, $1, $2, $3, $4
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.role = 'STUDENT'
		  AND u.is_active = TRUE
		  AND ($5::text IS NULL OR p.degree = $5)
		  AND ($6::int IS NULL OR p.graduation_year = $6)`,
		title, body, category, sentBy, filter.Degree, filter.GraduationYear)
	if err != nil {
		return 0, fmt.Errorf("error broadcasting notification: %w", err)
	}
	return tag.RowsAffected(), nil
}
