package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
)

// EventRepository handles placement event database operations
type EventRepository struct {
	db db.DBTX
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db db.DBTX) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, location, starts_at, ends_at, form_url, category,
	capacity, status, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.FormURL,
		&e.Category, &e.Capacity, &e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error scanning event: %w", err)
	}
	return e, nil
}

// Create creates a placement event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO events (title, description, location, starts_at, ends_at, form_url, category, capacity, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, status, created_at, updated_at`,
		event.Title, event.Description, event.Location, event.StartsAt, event.EndsAt,
		event.FormURL, event.Category, event.Capacity, event.CreatedBy).
		Scan(&event.ID, &event.Status, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

// Update rewrites an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, location = $3, starts_at = $4, ends_at = $5,
		    form_url = $6, category = $7, capacity = $8, status = $9, updated_at = NOW()
		WHERE id = $10`,
		event.Title, event.Description, event.Location, event.StartsAt, event.EndsAt,
		event.FormURL, event.Category, event.Capacity, event.Status, event.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// List returns events, optionally filtered by status, soonest first
func (r *EventRepository) List(ctx context.Context, status *models.EventStatus, offset uint64, limit int) ([]*models.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY starts_at ASC
		OFFSET $2 LIMIT $3`,
		status, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count counts events, optionally filtered by status
func (r *EventRepository) Count(ctx context.Context, status *models.EventStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM events WHERE ($1::text IS NULL OR status = $1)`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}

// Register upserts a registration. Re-registering refreshes registered_at so
// the operation stays idempotent from the student's point of view.
func (r *EventRepository) Register(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	reg := &models.EventRegistration{EventID: eventID, UserID: userID}
	err := r.db.QueryRow(ctx, `
		INSERT INTO event_registrations (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO UPDATE SET registered_at = NOW()
		RETURNING id, registered_at`,
		eventID, userID).Scan(&reg.ID, &reg.RegisteredAt)
	if err != nil {
		return nil, fmt.Errorf("error registering for event: %w", err)
	}
	return reg, nil
}

// GetRegistration retrieves a registration by event and user
func (r *EventRepository) GetRegistration(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	reg := &models.EventRegistration{}
	err := r.db.QueryRow(ctx, `
		SELECT id, event_id, user_id, registered_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error fetching registration: %w", err)
	}
	return reg, nil
}

// ListRegistrations returns an event's registrations with attendee details
func (r *EventRepository) ListRegistrations(ctx context.Context, eventID int64) ([]*models.EventRegistration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT reg.id, reg.event_id, reg.user_id, reg.registered_at,
		       u.id, u.email, u.first_name, u.last_name, u.role, u.is_active
		FROM event_registrations reg
		JOIN users u ON u.id = reg.user_id
		WHERE reg.event_id = $1
		ORDER BY reg.registered_at ASC`,
		eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.EventRegistration
	for rows.Next() {
		reg := &models.EventRegistration{User: &models.User{}}
		err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt,
			&reg.User.ID, &reg.User.Email, &reg.User.FirstName, &reg.User.LastName,
			&reg.User.Role, &reg.User.IsActive)
		if err != nil {
			return nil, fmt.Errorf("error scanning registration row: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// CountRegistrations counts an event's registrations
func (r *EventRepository) CountRegistrations(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return count, nil
}
