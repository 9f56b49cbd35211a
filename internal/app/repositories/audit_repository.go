package repositories

import (
	"context"
	"fmt"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
)

// AuditRepository handles audit trail database operations
type AuditRepository struct {
	db db.DBTX
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db db.DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an audit trail entry
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO audit_logs (actor_id, action, entity_type, entity_id, details, ip)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, entry.Details, entry.IP).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating audit entry: %w", err)
	}
	return nil
}

// List returns audit entries matching the filter, newest first
func (r *AuditRepository) List(ctx context.Context, filter AuditListFilter, offset uint64, limit int) ([]*models.AuditLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, actor_id, action, entity_type, entity_id, details, ip, created_at
		FROM audit_logs
		WHERE ($1::bigint IS NULL OR actor_id = $1)
		  AND ($2::text IS NULL OR action = $2)
		  AND ($3::text IS NULL OR entity_type = $3)
		  AND ($4::bigint IS NULL OR entity_id = $4)
		ORDER BY created_at DESC
		OFFSET $5 LIMIT $6`,
		filter.ActorID, filter.Action, filter.EntityType, filter.EntityID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		e := &models.AuditLog{}
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.Details, &e.IP, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count counts audit entries matching the filter
func (r *AuditRepository) Count(ctx context.Context, filter AuditListFilter) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM audit_logs
		WHERE ($1::bigint IS NULL OR actor_id = $1)
		  AND ($2::text IS NULL OR action = $2)
		  AND ($3::text IS NULL OR entity_type = $3)
		  AND ($4::bigint IS NULL OR entity_id = $4)`,
		filter.ActorID, filter.Action, filter.EntityType, filter.EntityID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting audit entries: %w", err)
	}
	return count, nil
}
