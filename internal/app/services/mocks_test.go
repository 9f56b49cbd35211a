package services

import (
	"context"
	"io"
	"time"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/repositories"
)

// fakeUnitOfWork runs the workflow against the same mock stores without a
// real transaction. A non-nil err short-circuits the workflow.
type fakeUnitOfWork struct {
	stores repositories.Stores
	err    error
}

func (f *fakeUnitOfWork) WithinTx(_ context.Context, fn func(stores repositories.Stores) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(f.stores)
}

type mockUserRepo struct {
	repositories.IUserRepository
	emailExistsFn    func(ctx context.Context, email string) (bool, error)
	createFn         func(ctx context.Context, user *models.User) error
	getByEmailFn     func(ctx context.Context, email string) (*models.User, error)
	getByIDFn        func(ctx context.Context, id int64) (*models.User, error)
	updatePasswordFn func(ctx context.Context, userID int64, passwordHash string) error
	setRoleFn        func(ctx context.Context, userID int64, role models.RoleType) error
	upsertExternalFn func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return m.updatePasswordFn(ctx, userID, passwordHash)
}

func (m *mockUserRepo) SetRole(ctx context.Context, userID int64, role models.RoleType) error {
	return m.setRoleFn(ctx, userID, role)
}

func (m *mockUserRepo) UpsertByExternalID(ctx context.Context, user *models.User) error {
	return m.upsertExternalFn(ctx, user)
}

type mockTokenRepo struct {
	repositories.ITokenRepository
	createRefreshFn       func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getRefreshFn          func(ctx context.Context, token string) (*models.RefreshToken, error)
	deleteRefreshFn       func(ctx context.Context, token string) error
	deleteUserRefreshFn   func(ctx context.Context, userID int64) error
	createPasswordResetFn func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	getPasswordResetFn    func(ctx context.Context, token string) (*models.PasswordResetToken, error)
	markResetUsedFn       func(ctx context.Context, id int64) error
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return m.createRefreshFn(ctx, userID, token, expiresAt)
}

func (m *mockTokenRepo) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.getRefreshFn(ctx, token)
}

func (m *mockTokenRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	return m.deleteRefreshFn(ctx, token)
}

func (m *mockTokenRepo) DeleteUserRefreshTokens(ctx context.Context, userID int64) error {
	return m.deleteUserRefreshFn(ctx, userID)
}

func (m *mockTokenRepo) CreatePasswordResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return m.createPasswordResetFn(ctx, userID, token, expiresAt)
}

func (m *mockTokenRepo) GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	return m.getPasswordResetFn(ctx, token)
}

func (m *mockTokenRepo) MarkPasswordResetUsed(ctx context.Context, id int64) error {
	return m.markResetUsedFn(ctx, id)
}

type mockProfileRepo struct {
	repositories.IProfileRepository
	getByUserIDFn   func(ctx context.Context, userID int64) (*models.Profile, error)
	getByIDFn       func(ctx context.Context, id int64) (*models.Profile, error)
	createFn        func(ctx context.Context, profile *models.Profile) error
	updateFn        func(ctx context.Context, profile *models.Profile) error
	setApprovalFn   func(ctx context.Context, profileID int64, status models.ApprovalStatus, reason *string) error
	setPlacementFn  func(ctx context.Context, profileID int64, status models.PlacementStatus, company *string, pkg *float64, offerLetterURL *string) error
	createVersionFn func(ctx context.Context, version *models.ProfileVersion) error
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	return m.createFn(ctx, profile)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	return m.updateFn(ctx, profile)
}

func (m *mockProfileRepo) SetApprovalStatus(ctx context.Context, profileID int64, status models.ApprovalStatus, reason *string) error {
	return m.setApprovalFn(ctx, profileID, status, reason)
}

func (m *mockProfileRepo) SetPlacement(ctx context.Context, profileID int64, status models.PlacementStatus, company *string, pkg *float64, offerLetterURL *string) error {
	return m.setPlacementFn(ctx, profileID, status, company, pkg, offerLetterURL)
}

func (m *mockProfileRepo) CreateVersion(ctx context.Context, version *models.ProfileVersion) error {
	return m.createVersionFn(ctx, version)
}

type mockFileRepo struct {
	repositories.IFileRepository
	createFn        func(ctx context.Context, file *models.FileUpload) error
	getByIDFn       func(ctx context.Context, id int64) (*models.FileUpload, error)
	getLatestFn     func(ctx context.Context, userID int64, fileType models.FileType) (*models.FileUpload, error)
	updateStatusFn  func(ctx context.Context, fileID int64, status models.FileStatus, reason *string, reviewedBy *int64) error
	createVersionFn func(ctx context.Context, version *models.FileUploadVersion) error
}

func (m *mockFileRepo) Create(ctx context.Context, file *models.FileUpload) error {
	return m.createFn(ctx, file)
}

func (m *mockFileRepo) GetByID(ctx context.Context, id int64) (*models.FileUpload, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockFileRepo) GetLatestByUserAndType(ctx context.Context, userID int64, fileType models.FileType) (*models.FileUpload, error) {
	return m.getLatestFn(ctx, userID, fileType)
}

func (m *mockFileRepo) UpdateStatus(ctx context.Context, fileID int64, status models.FileStatus, reason *string, reviewedBy *int64) error {
	return m.updateStatusFn(ctx, fileID, status, reason, reviewedBy)
}

func (m *mockFileRepo) CreateVersion(ctx context.Context, version *models.FileUploadVersion) error {
	return m.createVersionFn(ctx, version)
}

type mockJobRepo struct {
	repositories.IJobRepository
	getByIDFn           func(ctx context.Context, id int64) (*models.Job, error)
	updateFn            func(ctx context.Context, job *models.Job) error
	createApplicationFn func(ctx context.Context, app *models.JobApplication) error
	getApplicationFn    func(ctx context.Context, id int64) (*models.JobApplication, error)
	updateApplicationFn func(ctx context.Context, id int64, status models.ApplicationStatus) error
}

func (m *mockJobRepo) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockJobRepo) Update(ctx context.Context, job *models.Job) error {
	return m.updateFn(ctx, job)
}

func (m *mockJobRepo) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	return m.createApplicationFn(ctx, app)
}

func (m *mockJobRepo) GetApplicationByID(ctx context.Context, id int64) (*models.JobApplication, error) {
	return m.getApplicationFn(ctx, id)
}

func (m *mockJobRepo) UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	return m.updateApplicationFn(ctx, id, status)
}

type mockEventRepo struct {
	repositories.IEventRepository
	createFn    func(ctx context.Context, event *models.Event) error
	getByIDFn   func(ctx context.Context, id int64) (*models.Event, error)
	registerFn  func(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error)
	getRegFn    func(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error)
	countRegsFn func(ctx context.Context, eventID int64) (int64, error)
	updateFn    func(ctx context.Context, event *models.Event) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEventRepo) Register(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	return m.registerFn(ctx, eventID, userID)
}

func (m *mockEventRepo) GetRegistration(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error) {
	return m.getRegFn(ctx, eventID, userID)
}

func (m *mockEventRepo) CountRegistrations(ctx context.Context, eventID int64) (int64, error) {
	return m.countRegsFn(ctx, eventID)
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}

type mockNotificationRepo struct {
	repositories.INotificationRepository
	createFn    func(ctx context.Context, notification *models.Notification) error
	broadcastFn func(ctx context.Context, title, body string, category models.NotificationCategory, sentBy *int64, filter repositories.BroadcastFilter) (int64, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, notification)
}

func (m *mockNotificationRepo) Broadcast(ctx context.Context, title, body string, category models.NotificationCategory, sentBy *int64, filter repositories.BroadcastFilter) (int64, error) {
	return m.broadcastFn(ctx, title, body, category, sentBy, filter)
}

type mockAuditRepo struct {
	repositories.IAuditRepository
	createFn func(ctx context.Context, entry *models.AuditLog) error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, entry)
}

// fakeStorage records saves and deletes in memory.
type fakeStorage struct {
	saveFn  func(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error)
	deleted []string
}

func (f *fakeStorage) Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, key, content, size, contentType)
	}
	return key, nil
}

func (f *fakeStorage) URL(_ context.Context, key string) (string, error) {
	return "http://localhost/uploads/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeAIClient returns a canned completion.
type fakeAIClient struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
}

func (f *fakeAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	return f.completeFn(ctx, prompt)
}
