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

// FileRepository handles uploaded document database operations
type FileRepository struct {
	db db.DBTX
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db db.DBTX) *FileRepository {
	return &FileRepository{db: db}
}

const fileColumns = `id, user_id, file_type, file_name, object_key, mime_type, size_bytes, sha256,
	status, reject_reason, reviewed_by, reviewed_at, created_at, updated_at`

func scanFile(row pgx.Row) (*models.FileUpload, error) {
	f := &models.FileUpload{}
	err := row.Scan(
		&f.ID, &f.UserID, &f.FileType, &f.FileName, &f.ObjectKey, &f.MimeType, &f.SizeBytes, &f.SHA256,
		&f.Status, &f.RejectReason, &f.ReviewedBy, &f.ReviewedAt, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error scanning file upload: %w", err)
	}
	return f, nil
}

// Create inserts an upload record with its initial status
func (r *FileRepository) Create(ctx context.Context, file *models.FileUpload) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO file_uploads (user_id, file_type, file_name, object_key, mime_type, size_bytes, sha256, status, reject_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		file.UserID, file.FileType, file.FileName, file.ObjectKey, file.MimeType,
		file.SizeBytes, file.SHA256, file.Status, file.RejectReason).
		Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating file upload: %w", err)
	}
	return nil
}

// GetByID retrieves an upload by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.FileUpload, error) {
	return scanFile(r.db.QueryRow(ctx, `
		SELECT `+fileColumns+` FROM file_uploads WHERE id = $1`, id))
}

// GetLatestByUserAndType returns the newest upload of a given type for a user
func (r *FileRepository) GetLatestByUserAndType(ctx context.Context, userID int64, fileType models.FileType) (*models.FileUpload, error) {
	return scanFile(r.db.QueryRow(ctx, `
		SELECT `+fileColumns+`
		FROM file_uploads
		WHERE user_id = $1 AND file_type = $2
		ORDER BY created_at DESC
		LIMIT 1`,
		userID, fileType))
}

// List returns uploads matching the filter, newest first
func (r *FileRepository) List(ctx context.Context, filter FileListFilter, offset uint64, limit int) ([]*models.FileUpload, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+fileColumns+`
		FROM file_uploads
		WHERE ($1::bigint IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR file_type = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC
		OFFSET $4 LIMIT $5`,
		filter.UserID, filter.FileType, filter.Status, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing file uploads: %w", err)
	}
	defer rows.Close()

	var files []*models.FileUpload
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Count counts uploads matching the filter
func (r *FileRepository) Count(ctx context.Context, filter FileListFilter) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM file_uploads
		WHERE ($1::bigint IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR file_type = $2)
		  AND ($3::text IS NULL OR status = $3)`,
		filter.UserID, filter.FileType, filter.Status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting file uploads: %w", err)
	}
	return count, nil
}

// UpdateStatus records a review decision on an upload
func (r *FileRepository) UpdateStatus(ctx context.Context, fileID int64, status models.FileStatus, reason *string, reviewedBy *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE file_uploads
		SET status = $1, reject_reason = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $4`,
		status, reason, reviewedBy, fileID)
	if err != nil {
		return fmt.Errorf("error updating file status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}

// CreateVersion records one status change in the upload's history
func (r *FileRepository) CreateVersion(ctx context.Context, version *models.FileUploadVersion) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO file_upload_versions (file_upload_id, status, reason, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		version.FileUploadID, version.Status, version.Reason, version.ChangedBy).
		Scan(&version.ID, &version.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating file version: %w", err)
	}
	return nil
}

// ListVersions returns an upload's status history, newest first
func (r *FileRepository) ListVersions(ctx context.Context, fileID int64) ([]*models.FileUploadVersion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, file_upload_id, status, reason, changed_by, created_at
		FROM file_upload_versions
		WHERE file_upload_id = $1
		ORDER BY created_at DESC`,
		fileID)
	if err != nil {
		return nil, fmt.Errorf("error listing file versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.FileUploadVersion
	for rows.Next() {
		v := &models.FileUploadVersion{}
		if err := rows.Scan(&v.ID, &v.FileUploadID, &v.Status, &v.Reason, &v.ChangedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning file version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
