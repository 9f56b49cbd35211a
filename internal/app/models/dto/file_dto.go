package dto

import "github.com/prepsphere/backend/internal/app/models"

// FileUploadResponse represents an uploaded document
type FileUploadResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	FileType     string  `json:"fileType"`
	FileName     string  `json:"fileName"`
	MimeType     string  `json:"mimeType"`
	SizeBytes    int64   `json:"sizeBytes"`
	SHA256       string  `json:"sha256"`
	Status       string  `json:"status"`
	RejectReason *string `json:"rejectReason,omitempty"`
	URL          string  `json:"url,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// FromFileUpload converts a models.FileUpload to a FileUploadResponse
func FromFileUpload(f *models.FileUpload) FileUploadResponse {
	if f == nil {
		return FileUploadResponse{}
	}
	return FileUploadResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		FileType:     string(f.FileType),
		FileName:     f.FileName,
		MimeType:     f.MimeType,
		SizeBytes:    f.SizeBytes,
		SHA256:       f.SHA256,
		Status:       string(f.Status),
		RejectReason: f.RejectReason,
		URL:          f.URL,
		CreatedAt:    f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ReviewFileRequest verifies or rejects an uploaded document
type ReviewFileRequest struct {
	Verify bool    `json:"verify"`
	Reason *string `json:"reason"`
}

// FileListResponse represents a paginated document listing
type FileListResponse struct {
	Files      []FileUploadResponse `json:"files"`
	Pagination PaginationInfo       `json:"pagination"`
}

// FileVersionResponse represents one status change of a document
type FileVersionResponse struct {
	Status    string  `json:"status"`
	Reason    *string `json:"reason,omitempty"`
	ChangedBy *int64  `json:"changedBy,omitempty"`
	CreatedAt string  `json:"createdAt"`
}
