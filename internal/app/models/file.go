package models

import (
	"time"
)

// FileType classifies an uploaded document
type FileType string

const (
	FileTypeResume      FileType = "RESUME"
	FileTypeMarksheet   FileType = "MARKSHEET"
	FileTypeCertificate FileType = "CERTIFICATE"
	FileTypePhoto       FileType = "PHOTO"
	FileTypeOfferLetter FileType = "OFFER_LETTER"
)

// IsValid reports whether the value is a known file type.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypeResume, FileTypeMarksheet, FileTypeCertificate, FileTypePhoto, FileTypeOfferLetter:
		return true
	}
	return false
}

// FileStatus is the verification state of an uploaded document
type FileStatus string

const (
	FileStatusPending  FileStatus = "PENDING"
	FileStatusVerified FileStatus = "VERIFIED"
	FileStatusRejected FileStatus = "REJECTED"
)

// fileStatusTransitions lists the allowed verification state changes.
// Terminal states can only be left by uploading a new document.
var fileStatusTransitions = map[FileStatus][]FileStatus{
	FileStatusPending:  {FileStatusVerified, FileStatusRejected},
	FileStatusVerified: {},
	FileStatusRejected: {},
}

// CanTransitionTo reports whether the status may move to the target state.
func (s FileStatus) CanTransitionTo(target FileStatus) bool {
	for _, allowed := range fileStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known file status.
func (s FileStatus) IsValid() bool {
	switch s {
	case FileStatusPending, FileStatusVerified, FileStatusRejected:
		return true
	}
	return false
}

// FileUpload defines the document model based on the 'file_uploads' table
type FileUpload struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"userId" db:"user_id"`
	FileType     FileType   `json:"fileType" db:"file_type" example:"RESUME"`
	FileName     string     `json:"fileName" db:"file_name" example:"resume.pdf"`
	ObjectKey    string     `json:"-" db:"object_key"`
	MimeType     string     `json:"mimeType" db:"mime_type" example:"application/pdf"`
	SizeBytes    int64      `json:"sizeBytes" db:"size_bytes"`
	SHA256       string     `json:"sha256" db:"sha256"`
	Status       FileStatus `json:"status" db:"status"`
	RejectReason *string    `json:"rejectReason,omitempty" db:"reject_reason"`
	ReviewedBy   *int64     `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	URL          string     `json:"url,omitempty"` // Resolved download URL, no db tag
}

// FileUploadVersion records each status change of an upload
type FileUploadVersion struct {
	ID           int64      `json:"id" db:"id"`
	FileUploadID int64      `json:"fileUploadId" db:"file_upload_id"`
	Status       FileStatus `json:"status" db:"status"`
	Reason       *string    `json:"reason,omitempty" db:"reason"`
	ChangedBy    *int64     `json:"changedBy,omitempty" db:"changed_by"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}
