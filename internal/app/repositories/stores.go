package repositories

import (
	"context"
	"time"

	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/db"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SetRole(ctx context.Context, userID int64, role models.RoleType) error
	SetActive(ctx context.Context, userID int64, isActive bool) error
	UpsertByExternalID(ctx context.Context, user *models.User) error
	List(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, error)
	Count(ctx context.Context, role *models.RoleType) (int64, error)
}

// ITokenRepository defines refresh and password-reset token persistence
type ITokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserRefreshTokens(ctx context.Context, userID int64) error
	CreatePasswordResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetPasswordResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkPasswordResetUsed(ctx context.Context, id int64) error
}

// ProfileListFilter narrows profile listings for reviewers
type ProfileListFilter struct {
	ApprovalStatus  *models.ApprovalStatus
	PlacementStatus *models.PlacementStatus
	Degree          *string
	GraduationYear  *int
}

// IProfileRepository defines student profile persistence
type IProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	SetApprovalStatus(ctx context.Context, profileID int64, status models.ApprovalStatus, reason *string) error
	SetPlacement(ctx context.Context, profileID int64, status models.PlacementStatus, company *string, pkg *float64, offerLetterURL *string) error
	List(ctx context.Context, filter ProfileListFilter, offset uint64, limit int) ([]*models.Profile, error)
	Count(ctx context.Context, filter ProfileListFilter) (int64, error)
	CreateVersion(ctx context.Context, version *models.ProfileVersion) error
	ListVersions(ctx context.Context, profileID int64) ([]*models.ProfileVersion, error)
}

// FileListFilter narrows document listings
type FileListFilter struct {
	UserID   *int64
	FileType *models.FileType
	Status   *models.FileStatus
}

// IFileRepository defines uploaded document persistence
type IFileRepository interface {
	Create(ctx context.Context, file *models.FileUpload) error
	GetByID(ctx context.Context, id int64) (*models.FileUpload, error)
	GetLatestByUserAndType(ctx context.Context, userID int64, fileType models.FileType) (*models.FileUpload, error)
	List(ctx context.Context, filter FileListFilter, offset uint64, limit int) ([]*models.FileUpload, error)
	Count(ctx context.Context, filter FileListFilter) (int64, error)
	UpdateStatus(ctx context.Context, fileID int64, status models.FileStatus, reason *string, reviewedBy *int64) error
	CreateVersion(ctx context.Context, version *models.FileUploadVersion) error
	ListVersions(ctx context.Context, fileID int64) ([]*models.FileUploadVersion, error)
}

// JobListFilter narrows job listings
type JobListFilter struct {
	Status  *models.JobStatus
	Company *string
}

// IJobRepository defines job posting and application persistence
type IJobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	List(ctx context.Context, filter JobListFilter, offset uint64, limit int) ([]*models.Job, error)
	Count(ctx context.Context, filter JobListFilter) (int64, error)

	CreateApplication(ctx context.Context, app *models.JobApplication) error
	GetApplication(ctx context.Context, jobID, userID int64) (*models.JobApplication, error)
	GetApplicationByID(ctx context.Context, id int64) (*models.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	ListApplicationsByJob(ctx context.Context, jobID int64, offset uint64, limit int) ([]*models.JobApplication, error)
	CountApplicationsByJob(ctx context.Context, jobID int64) (int64, error)
	ListApplicationsByUser(ctx context.Context, userID int64) ([]*models.JobApplication, error)
}

// IEventRepository defines placement event persistence
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	List(ctx context.Context, status *models.EventStatus, offset uint64, limit int) ([]*models.Event, error)
	Count(ctx context.Context, status *models.EventStatus) (int64, error)

	Register(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error)
	GetRegistration(ctx context.Context, eventID, userID int64) (*models.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int64) ([]*models.EventRegistration, error)
	CountRegistrations(ctx context.Context, eventID int64) (int64, error)
}

// BroadcastFilter selects which students receive a broadcast
type BroadcastFilter struct {
	Degree         *string
	GraduationYear *int
}

// INotificationRepository defines notification persistence
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.Notification, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Broadcast(ctx context.Context, title, body string, category models.NotificationCategory, sentBy *int64, filter BroadcastFilter) (int64, error)
}

// AuditListFilter narrows audit trail listings
type AuditListFilter struct {
	ActorID    *int64
	Action     *string
	EntityType *string
	EntityID   *int64
}

// IAuditRepository defines audit trail persistence
type IAuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter AuditListFilter, offset uint64, limit int) ([]*models.AuditLog, error)
	Count(ctx context.Context, filter AuditListFilter) (int64, error)
}

// IAnalyticsRepository defines aggregate reporting queries
type IAnalyticsRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountProfilesByApproval(ctx context.Context, status models.ApprovalStatus) (int64, error)
	CountPlacedStudents(ctx context.Context) (int64, error)
	CountOpenJobs(ctx context.Context) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
	CountUpcomingEvents(ctx context.Context) (int64, error)
	PlacementsByYear(ctx context.Context) (map[int]int64, error)
	ApplicationsByStatus(ctx context.Context) (map[string]int64, error)
}

// Stores bundles every repository over a single database handle. Inside
// UnitOfWork.WithinTx all stores share one transaction.
type Stores struct {
	Users         IUserRepository
	Tokens        ITokenRepository
	Profiles      IProfileRepository
	Files         IFileRepository
	Jobs          IJobRepository
	Events        IEventRepository
	Notifications INotificationRepository
	Audit         IAuditRepository
	Analytics     IAnalyticsRepository
}

// NewStores creates a Stores bundle over the given handle
func NewStores(dbtx db.DBTX) Stores {
	return Stores{
		Users:         NewUserRepository(dbtx),
		Tokens:        NewTokenRepository(dbtx),
		Profiles:      NewProfileRepository(dbtx),
		Files:         NewFileRepository(dbtx),
		Jobs:          NewJobRepository(dbtx),
		Events:        NewEventRepository(dbtx),
		Notifications: NewNotificationRepository(dbtx),
		Audit:         NewAuditRepository(dbtx),
		Analytics:     NewAnalyticsRepository(dbtx),
	}
}
