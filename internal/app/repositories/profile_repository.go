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

// ProfileRepository handles student profile database operations
type ProfileRepository struct {
	db db.DBTX
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db db.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, degree, branch, graduation_year, cgpa, phone, skills,
	approval_status, approval_reason, placement_status, placement_company, placement_package,
	offer_letter_url, version, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Degree, &p.Branch, &p.GraduationYear, &p.CGPA, &p.Phone, &p.Skills,
		&p.ApprovalStatus, &p.ApprovalReason, &p.PlacementStatus, &p.PlacementCompany, &p.PlacementPackage,
		&p.OfferLetterURL, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error scanning profile: %w", err)
	}
	return p, nil
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, degree, branch, graduation_year, cgpa, phone, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, approval_status, placement_status, version, created_at, updated_at`,
		profile.UserID, profile.Degree, profile.Branch, profile.GraduationYear,
		profile.CGPA, profile.Phone, profile.Skills).
		Scan(&profile.ID, &profile.ApprovalStatus, &profile.PlacementStatus,
			&profile.Version, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

// GetByUserID retrieves a profile by its owner's user ID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
}

// Update rewrites profile data, bumps the version and resets approval to
// pending. Callers decide beforehand whether the data actually changed.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	err := r.db.QueryRow(ctx, `
		UPDATE profiles
		SET degree = $1, branch = $2, graduation_year = $3, cgpa = $4, phone = $5, skills = $6,
		    approval_status = 'PENDING', approval_reason = NULL,
		    version = version + 1, updated_at = NOW()
		WHERE id = $7
		RETURNING approval_status, version, updated_at`,
		profile.Degree, profile.Branch, profile.GraduationYear, profile.CGPA,
		profile.Phone, profile.Skills, profile.ID).
		Scan(&profile.ApprovalStatus, &profile.Version, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrProfileNotFound
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	profile.ApprovalReason = nil
	return nil
}

// SetApprovalStatus records a review decision
func (r *ProfileRepository) SetApprovalStatus(ctx context.Context, profileID int64, status models.ApprovalStatus, reason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET approval_status = $1, approval_reason = $2, updated_at = NOW()
		WHERE id = $3`,
		status, reason, profileID)
	if err != nil {
		return fmt.Errorf("error updating approval status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// SetPlacement records a placement status change. A nil offer letter URL
// keeps whatever was stored before.
func (r *ProfileRepository) SetPlacement(ctx context.Context, profileID int64, status models.PlacementStatus, company *string, pkg *float64, offerLetterURL *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET placement_status = $1, placement_company = $2, placement_package = $3,
		    offer_letter_url = COALESCE($4, offer_letter_url), updated_at = NOW()
		WHERE id = $5`,
		status, company, pkg, offerLetterURL, profileID)
	if err != nil {
		return fmt.Errorf("error updating placement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

// List returns profiles matching the filter, newest first
func (r *ProfileRepository) List(ctx context.Context, filter ProfileListFilter, offset uint64, limit int) ([]*models.Profile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE ($1::text IS NULL OR approval_status = $1)
		  AND ($2::text IS NULL OR placement_status = $2)
		  AND ($3::text IS NULL OR degree = $3)
		  AND ($4::int IS NULL OR graduation_year = $4)
		ORDER BY updated_at DESC
		OFFSET $5 LIMIT $6`,
		filter.ApprovalStatus, filter.PlacementStatus, filter.Degree, filter.GraduationYear,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Count counts profiles matching the filter
func (r *ProfileRepository) Count(ctx context.Context, filter ProfileListFilter) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM profiles
		WHERE ($1::text IS NULL OR approval_status = $1)
		  AND ($2::text IS NULL OR placement_status = $2)
		  AND ($3::text IS NULL OR degree = $3)
		  AND ($4::int IS NULL OR graduation_year = $4)`,
		filter.ApprovalStatus, filter.PlacementStatus, filter.Degree, filter.GraduationYear).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting profiles: %w", err)
	}
	return count, nil
}

// CreateVersion stores an immutable profile snapshot
func (r *ProfileRepository) CreateVersion(ctx context.Context, version *models.ProfileVersion) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profile_versions (profile_id, version, snapshot, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		version.ProfileID, version.Version, version.Snapshot, version.ChangedBy).
		Scan(&version.ID, &version.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating profile version: %w", err)
	}
	return nil
}

// ListVersions returns a profile's snapshots, newest first
func (r *ProfileRepository) ListVersions(ctx context.Context, profileID int64) ([]*models.ProfileVersion, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, version, snapshot, changed_by, created_at
		FROM profile_versions
		WHERE profile_id = $1
		ORDER BY version DESC`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("error listing profile versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.ProfileVersion
	for rows.Next() {
		v := &models.ProfileVersion{}
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.Version, &v.Snapshot, &v.ChangedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning profile version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
