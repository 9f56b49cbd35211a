package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/filestorage"
	"github.com/prepsphere/backend/internal/pkg/helpers"
	"github.com/prepsphere/backend/internal/pkg/logger"
	"github.com/prepsphere/backend/internal/pkg/metrics"
)

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// UploadInput carries one document upload
type UploadInput struct {
	UserID   int64
	FileType models.FileType
	FileName string
	MimeType string
	Size     int64
	Content  io.Reader
}

// FileListPage is a page of uploads with the total count
type FileListPage struct {
	Files []*models.FileUpload
	Total int64
}

// FileService defines document upload and verification operations
type FileService interface {
	Upload(ctx context.Context, in *UploadInput) (*models.FileUpload, error)
	GetByID(ctx context.Context, id int64) (*models.FileUpload, error)
	List(ctx context.Context, filter repositories.FileListFilter, page, size int) (*FileListPage, int, error)
	Review(ctx context.Context, reviewerID, fileID int64, verify bool, reason *string) (*models.FileUpload, error)
	ListVersions(ctx context.Context, fileID int64) ([]*models.FileUploadVersion, error)
}

type fileServiceImpl struct {
	stores      repositories.Stores
	uow         repositories.UnitOfWork
	storage     filestorage.Storage
	maxFileSize int64
}

// NewFileService creates a new FileService
func NewFileService(stores repositories.Stores, uow repositories.UnitOfWork, storage filestorage.Storage, maxFileSize int64) FileService {
	return &fileServiceImpl{
		stores:      stores,
		uow:         uow,
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// Upload validates, stores and records a document. If the student's latest
// upload of the same type was rejected and the new content is byte-identical,
// the new row is inserted already rejected with the same reason.
func (s *fileServiceImpl) Upload(ctx context.Context, in *UploadInput) (*models.FileUpload, error) {
	if !in.FileType.IsValid() {
		return nil, apperrors.ErrValidationFailed
	}
	if in.Size > s.maxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !allowedMimeTypes[in.MimeType] {
		return nil, apperrors.ErrUnsupportedFileType
	}

	content, err := io.ReadAll(io.LimitReader(in.Content, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])

	// Resubmitting rejected content verbatim stays rejected
	status := models.FileStatusPending
	var rejectReason *string
	latest, err := s.stores.Files.GetLatestByUserAndType(ctx, in.UserID, in.FileType)
	if err != nil && !errors.Is(err, apperrors.ErrFileNotFound) {
		return nil, err
	}
	if latest != nil && latest.Status == models.FileStatusRejected && latest.SHA256 == digest {
		status = models.FileStatusRejected
		rejectReason = latest.RejectReason
	}

	key := fmt.Sprintf("documents/%d/%s%s", in.UserID, uuid.New().String(), filepath.Ext(in.FileName))
	storedKey, err := s.storage.Save(ctx, key, bytes.NewReader(content), int64(len(content)), in.MimeType)
	if err != nil {
		return nil, apperrors.ErrStorageFailure
	}

	file := &models.FileUpload{
		UserID:       in.UserID,
		FileType:     in.FileType,
		FileName:     in.FileName,
		ObjectKey:    storedKey,
		MimeType:     in.MimeType,
		SizeBytes:    int64(len(content)),
		SHA256:       digest,
		Status:       status,
		RejectReason: rejectReason,
	}

	err = s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		if err := stores.Files.Create(ctx, file); err != nil {
			return err
		}

		if err := stores.Files.CreateVersion(ctx, &models.FileUploadVersion{
			FileUploadID: file.ID,
			Status:       file.Status,
			Reason:       file.RejectReason,
			ChangedBy:    &in.UserID,
		}); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{
			"fileType": file.FileType,
			"fileName": file.FileName,
			"sha256":   file.SHA256,
			"status":   file.Status,
		})
		return stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &in.UserID,
			Action:     models.AuditActionFileUpload,
			EntityType: "file_upload",
			EntityID:   &file.ID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		})
	})
	if err != nil {
		// Best-effort cleanup of the orphaned object
		_ = s.storage.Delete(ctx, storedKey)
		return nil, err
	}

	metrics.FileUploads.Inc()
	if file.Status == models.FileStatusRejected {
		metrics.FileRejections.Inc()
	}

	logger.Info().
		Int64("user_id", in.UserID).
		Str("file_type", string(in.FileType)).
		Str("status", string(file.Status)).
		Msg("Document uploaded")

	s.resolveURL(ctx, file)
	return file, nil
}

func (s *fileServiceImpl) resolveURL(ctx context.Context, file *models.FileUpload) {
	url, err := s.storage.URL(ctx, file.ObjectKey)
	if err != nil {
		logger.Warn().Err(err).Int64("file_id", file.ID).Msg("Failed to resolve file URL")
		return
	}
	file.URL = url
}

// GetByID returns an upload with its resolved download URL
func (s *fileServiceImpl) GetByID(ctx context.Context, id int64) (*models.FileUpload, error) {
	file, err := s.stores.Files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveURL(ctx, file)
	return file, nil
}

// List returns a page of uploads matching the filter
func (s *fileServiceImpl) List(ctx context.Context, filter repositories.FileListFilter, page, size int) (*FileListPage, int, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	files, err := s.stores.Files.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stores.Files.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	for _, f := range files {
		s.resolveURL(ctx, f)
	}
	return &FileListPage{Files: files, Total: total}, limit, nil
}

// Review verifies or rejects a pending upload. A rejection needs a reason.
// Status change, version entry, notification and audit commit atomically.
func (s *fileServiceImpl) Review(ctx context.Context, reviewerID, fileID int64, verify bool, reason *string) (*models.FileUpload, error) {
	if !verify && (reason == nil || *reason == "") {
		return nil, apperrors.ErrReasonRequired
	}

	var result *models.FileUpload
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		file, err := stores.Files.GetByID(ctx, fileID)
		if err != nil {
			return err
		}

		target := models.FileStatusVerified
		action := models.AuditActionFileVerify
		title := "Document verified"
		body := fmt.Sprintf("Your %s %q has been verified.", file.FileType, file.FileName)
		if !verify {
			target = models.FileStatusRejected
			action = models.AuditActionFileReject
			title = "Document rejected"
			body = fmt.Sprintf("Your %s %q was rejected: %s", file.FileType, file.FileName, *reason)
		}

		if !file.Status.CanTransitionTo(target) {
			return apperrors.ErrInvalidTransition
		}

		if err := stores.Files.UpdateStatus(ctx, fileID, target, reason, &reviewerID); err != nil {
			return err
		}
		file.Status = target
		file.RejectReason = reason
		file.ReviewedBy = &reviewerID

		if err := stores.Files.CreateVersion(ctx, &models.FileUploadVersion{
			FileUploadID: fileID,
			Status:       target,
			Reason:       reason,
			ChangedBy:    &reviewerID,
		}); err != nil {
			return err
		}

		if err := stores.Notifications.Create(ctx, &models.Notification{
			UserID:   file.UserID,
			Title:    title,
			Body:     body,
			Category: models.NotificationDocument,
			SenderID: &reviewerID,
		}); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"status": target, "reason": reason})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &reviewerID,
			Action:     action,
			EntityType: "file_upload",
			EntityID:   &fileID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		result = file
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Status == models.FileStatusRejected {
		metrics.FileRejections.Inc()
	}
	s.resolveURL(ctx, result)
	return result, nil
}

// ListVersions returns an upload's status history
func (s *fileServiceImpl) ListVersions(ctx context.Context, fileID int64) ([]*models.FileUploadVersion, error) {
	if _, err := s.stores.Files.GetByID(ctx, fileID); err != nil {
		return nil, err
	}
	return s.stores.Files.ListVersions(ctx, fileID)
}
