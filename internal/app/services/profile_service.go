package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/app/repositories"
	"github.com/prepsphere/backend/internal/pkg/apperrors"
	"github.com/prepsphere/backend/internal/pkg/helpers"
	"github.com/prepsphere/backend/internal/pkg/logger"
)

// ProfileService defines student profile operations
type ProfileService interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	GetByID(ctx context.Context, profileID int64) (*models.Profile, error)
	Upsert(ctx context.Context, userID int64, req *dto.UpsertProfileRequest) (*models.Profile, error)
	Review(ctx context.Context, reviewerID, profileID int64, approve bool, reason *string) (*models.Profile, error)
	UpdatePlacement(ctx context.Context, actorID, profileID int64, req *dto.UpdatePlacementRequest) (*models.Profile, error)
	List(ctx context.Context, filter repositories.ProfileListFilter, page, size int) (*dto.ProfileListResponse, error)
	ListVersions(ctx context.Context, profileID int64) ([]*models.ProfileVersion, error)
}

type profileServiceImpl struct {
	stores repositories.Stores
	uow    repositories.UnitOfWork
}

// NewProfileService creates a new ProfileService
func NewProfileService(stores repositories.Stores, uow repositories.UnitOfWork) ProfileService {
	return &profileServiceImpl{stores: stores, uow: uow}
}

// GetByUserID returns the profile owned by a user
func (s *profileServiceImpl) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.stores.Profiles.GetByUserID(ctx, userID)
}

// GetByID returns a profile by ID
func (s *profileServiceImpl) GetByID(ctx context.Context, profileID int64) (*models.Profile, error) {
	return s.stores.Profiles.GetByID(ctx, profileID)
}

// profileDataChanged compares the incoming request against the stored profile.
func profileDataChanged(p *models.Profile, req *dto.UpsertProfileRequest) bool {
	if p.Degree != req.Degree || p.Branch != req.Branch || p.Skills != req.Skills {
		return true
	}
	if !intPtrEqual(p.GraduationYear, req.GraduationYear) {
		return true
	}
	if !floatPtrEqual(p.CGPA, req.CGPA) {
		return true
	}
	if !stringPtrEqual(p.Phone, req.Phone) {
		return true
	}
	return false
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Upsert creates the caller's profile or updates it. An update that changes
// no field is a no-op; a real change resets approval to pending, bumps the
// version and stores a snapshot of the new state.
func (s *profileServiceImpl) Upsert(ctx context.Context, userID int64, req *dto.UpsertProfileRequest) (*models.Profile, error) {
	existing, err := s.stores.Profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	if existing != nil && !profileDataChanged(existing, req) {
		return existing, nil
	}

	var result *models.Profile
	err = s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		profile := existing
		if profile == nil {
			profile = &models.Profile{
				UserID: userID,
				Degree: req.Degree,
				Branch: req.Branch,
				Skills: req.Skills,
			}
			profile.GraduationYear = req.GraduationYear
			profile.CGPA = req.CGPA
			profile.Phone = req.Phone
			if err := stores.Profiles.Create(ctx, profile); err != nil {
				return err
			}
		} else {
			profile.Degree = req.Degree
			profile.Branch = req.Branch
			profile.GraduationYear = req.GraduationYear
			profile.CGPA = req.CGPA
			profile.Phone = req.Phone
			profile.Skills = req.Skills
			if err := stores.Profiles.Update(ctx, profile); err != nil {
				return err
			}
		}

		snapshot, err := json.Marshal(dto.FromProfile(profile))
		if err != nil {
			return err
		}
		if err := stores.Profiles.CreateVersion(ctx, &models.ProfileVersion{
			ProfileID: profile.ID,
			Version:   profile.Version,
			Snapshot:  snapshot,
			ChangedBy: &userID,
		}); err != nil {
			return err
		}

		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &userID,
			Action:     models.AuditActionProfileUpdate,
			EntityType: "profile",
			EntityID:   &profile.ID,
			Details:    snapshot,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		result = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("user_id", userID).Int("version", result.Version).Msg("Profile saved")
	return result, nil
}

// Review approves or rejects a pending profile. A rejection needs a reason.
// Status change, notification and audit entry commit atomically.
func (s *profileServiceImpl) Review(ctx context.Context, reviewerID, profileID int64, approve bool, reason *string) (*models.Profile, error) {
	if !approve && (reason == nil || *reason == "") {
		return nil, apperrors.ErrReasonRequired
	}

	var result *models.Profile
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		profile, err := stores.Profiles.GetByID(ctx, profileID)
		if err != nil {
			return err
		}

		target := models.ApprovalApproved
		action := models.AuditActionProfileApprove
		title := "Profile approved"
		body := "Your profile has been approved by the placement office."
		if !approve {
			target = models.ApprovalRejected
			action = models.AuditActionProfileReject
			title = "Profile rejected"
			body = "Your profile was rejected: " + *reason
		}

		if !profile.ApprovalStatus.CanTransitionTo(target) {
			return apperrors.ErrInvalidTransition
		}

		if err := stores.Profiles.SetApprovalStatus(ctx, profileID, target, reason); err != nil {
			return err
		}
		profile.ApprovalStatus = target
		profile.ApprovalReason = reason

		if err := stores.Notifications.Create(ctx, &models.Notification{
			UserID:   profile.UserID,
			Title:    title,
			Body:     body,
			Category: models.NotificationProfile,
			SenderID: &reviewerID,
		}); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{"status": target, "reason": reason})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &reviewerID,
			Action:     action,
			EntityType: "profile",
			EntityID:   &profileID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		result = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdatePlacement moves a student's placement status. Forward transitions
// pass silently; anything else is an override and needs a justification.
func (s *profileServiceImpl) UpdatePlacement(ctx context.Context, actorID, profileID int64, req *dto.UpdatePlacementRequest) (*models.Profile, error) {
	target := models.PlacementStatus(req.Status)
	if !target.IsValid() {
		return nil, apperrors.ErrInvalidPlacement
	}

	var result *models.Profile
	err := s.uow.WithinTx(ctx, func(stores repositories.Stores) error {
		profile, err := stores.Profiles.GetByID(ctx, profileID)
		if err != nil {
			return err
		}

		action := models.AuditActionPlacementUpdate
		if profile.PlacementStatus != target && !profile.PlacementStatus.CanTransitionTo(target) {
			if req.Justification == nil || *req.Justification == "" {
				return apperrors.ErrReasonRequired
			}
			action = models.AuditActionPlacementOverride
		}

		if err := stores.Profiles.SetPlacement(ctx, profileID, target, req.Company, req.Package, req.OfferLetterURL); err != nil {
			return err
		}
		profile.PlacementStatus = target
		profile.PlacementCompany = req.Company
		profile.PlacementPackage = req.Package
		if req.OfferLetterURL != nil {
			profile.OfferLetterURL = req.OfferLetterURL
		}

		body := "Your placement status is now " + string(target) + "."
		if req.Company != nil {
			body = "Your placement status is now " + string(target) + " at " + *req.Company + "."
		}
		if err := stores.Notifications.Create(ctx, &models.Notification{
			UserID:   profile.UserID,
			Title:    "Placement status updated",
			Body:     body,
			Category: models.NotificationPlacement,
			SenderID: &actorID,
		}); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]any{
			"status":         target,
			"company":        req.Company,
			"package":        req.Package,
			"offerLetterUrl": req.OfferLetterURL,
			"justification":  req.Justification,
		})
		if err := stores.Audit.Create(ctx, &models.AuditLog{
			ActorID:    &actorID,
			Action:     action,
			EntityType: "profile",
			EntityID:   &profileID,
			Details:    details,
			IP:         helpers.ClientIPFromContext(ctx),
		}); err != nil {
			return err
		}

		result = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns a page of profiles for reviewers
func (s *profileServiceImpl) List(ctx context.Context, filter repositories.ProfileListFilter, page, size int) (*dto.ProfileListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	profiles, err := s.stores.Profiles.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.stores.Profiles.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileListResponse{
		Profiles:   make([]dto.ProfileResponse, 0, len(profiles)),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, dto.FromProfile(p))
	}
	return resp, nil
}

// ListVersions returns a profile's snapshot history
func (s *profileServiceImpl) ListVersions(ctx context.Context, profileID int64) ([]*models.ProfileVersion, error) {
	if _, err := s.stores.Profiles.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	return s.stores.Profiles.ListVersions(ctx, profileID)
}
