package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/services"
	"github.com/prepsphere/backend/internal/middleware"
)

type stubFileService struct {
	services.FileService
	getByIDFn func(ctx context.Context, id int64) (*models.FileUpload, error)
}

func (s *stubFileService) GetByID(ctx context.Context, id int64) (*models.FileUpload, error) {
	return s.getByIDFn(ctx, id)
}

func downloadRequest(t *testing.T, svc services.FileService, userID int64, role models.RoleType) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := NewFileController(svc, zerolog.Nop())
	router := gin.New()
	router.GET("/files/:id/download", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, string(role))
		ctrl.Download(c)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/files/9/download", nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestDownloadRedirectsOwner(t *testing.T) {
	svc := &stubFileService{
		getByIDFn: func(_ context.Context, id int64) (*models.FileUpload, error) {
			return &models.FileUpload{ID: id, UserID: 42, URL: "http://localhost/uploads/documents/42/resume.pdf"}, nil
		},
	}

	rec := downloadRequest(t, svc, 42, models.RoleStudent)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "http://localhost/uploads/documents/42/resume.pdf" {
		t.Errorf("unexpected redirect target %q", loc)
	}
}

func TestDownloadForbidsOtherStudents(t *testing.T) {
	svc := &stubFileService{
		getByIDFn: func(_ context.Context, id int64) (*models.FileUpload, error) {
			return &models.FileUpload{ID: id, UserID: 42, URL: "http://localhost/uploads/documents/42/resume.pdf"}, nil
		},
	}

	rec := downloadRequest(t, svc, 77, models.RoleStudent)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
