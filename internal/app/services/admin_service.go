package services

import (
	"context"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/helpers"
)

// AdminService defines reporting and audit trail operations
type AdminService interface {
	Analytics(ctx context.Context) (*dto.AnalyticsResponse, error)
	AuditLogs(ctx context.Context, filter repositories.AuditListFilter, page, size int) (*dto.AuditLogListResponse, error)
}

type adminServiceImpl struct {
	stores repositories.Stores
}

// NewAdminService creates a new AdminService
func NewAdminService(stores repositories.Stores) AdminService {
	return &adminServiceImpl{stores: stores}
}

// Analytics aggregates portal-wide placement statistics
func (s *adminServiceImpl) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	resp := &dto.AnalyticsResponse{}

	var err error
	if resp.TotalStudents, err = s.stores.Analytics.CountStudents(ctx); err != nil {
		return nil, err
	}
	if resp.ApprovedProfiles, err = s.stores.Analytics.CountProfilesByApproval(ctx, models.ApprovalApproved); err != nil {
		return nil, err
	}
	if resp.PendingProfiles, err = s.stores.Analytics.CountProfilesByApproval(ctx, models.ApprovalPending); err != nil {
		return nil, err
	}
	if resp.PlacedStudents, err = s.stores.Analytics.CountPlacedStudents(ctx); err != nil {
		return nil, err
	}
	if resp.OpenJobs, err = s.stores.Analytics.CountOpenJobs(ctx); err != nil {
		return nil, err
	}
	if resp.TotalApplied, err = s.stores.Analytics.CountApplications(ctx); err != nil {
		return nil, err
	}
	if resp.UpcomingEvents, err = s.stores.Analytics.CountUpcomingEvents(ctx); err != nil {
		return nil, err
	}
	if resp.PlacementsByYear, err = s.stores.Analytics.PlacementsByYear(ctx); err != nil {
		return nil, err
	}
	if resp.ApplicationsBy, err = s.stores.Analytics.ApplicationsByStatus(ctx); err != nil {
		return nil, err
	}

	return resp, nil
}

// AuditLogs returns a page of audit trail entries
func (s *adminServiceImpl) AuditLogs(ctx context.Context, filter repositories.AuditListFilter, page, size int) (*dto.AuditLogListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	entries, err := s.stores.Audit.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Audit.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuditLogListResponse{
		Entries:    make([]dto.AuditLogResponse, 0, len(entries)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.FromAuditLog(e))
	}
	return resp, nil
}
