package dto

import (
	"time"

	"github.com/prepsphere/backend/internal/app/models"
)

// CreateJobRequest creates a job posting
type CreateJobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Package     *float64   `json:"package" binding:"omitempty,min=0"`
	MinCGPA     *float64   `json:"minCgpa" binding:"omitempty,min=0,max=10"`
	Eligibility string     `json:"eligibility"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateJobRequest updates a job posting
type UpdateJobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Package     *float64   `json:"package" binding:"omitempty,min=0"`
	MinCGPA     *float64   `json:"minCgpa" binding:"omitempty,min=0,max=10"`
	Eligibility string     `json:"eligibility"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status" binding:"omitempty,oneof=OPEN CLOSED"`
}

// JobResponse represents a job posting
type JobResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Package     *float64   `json:"package,omitempty"`
	MinCGPA     *float64   `json:"minCgpa,omitempty"`
	Eligibility string     `json:"eligibility"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromJob converts a models.Job to a JobResponse
func FromJob(job *models.Job) JobResponse {
	if job == nil {
		return JobResponse{}
	}
	return JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		Description: job.Description,
		Location:    job.Location,
		Package:     job.Package,
		MinCGPA:     job.MinCGPA,
		Eligibility: job.Eligibility,
		Deadline:    job.Deadline,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
	}
}

// JobListResponse represents a paginated job listing
type JobListResponse struct {
	Jobs       []JobResponse  `json:"jobs"`
	Pagination PaginationInfo `json:"pagination"`
}

// ApplicationResponse represents a job application
type ApplicationResponse struct {
	ID        int64         `json:"id"`
	JobID     int64         `json:"jobId"`
	UserID    int64         `json:"userId"`
	Status    string        `json:"status"`
	AppliedAt time.Time     `json:"appliedAt"`
	Job       *JobResponse  `json:"job,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
}

// FromApplication converts a models.JobApplication to an ApplicationResponse
func FromApplication(app *models.JobApplication) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}
	resp := ApplicationResponse{
		ID:        app.ID,
		JobID:     app.JobID,
		UserID:    app.UserID,
		Status:    string(app.Status),
		AppliedAt: app.AppliedAt,
	}
	if app.Job != nil {
		job := FromJob(app.Job)
		resp.Job = &job
	}
	if app.User != nil {
		user := FromUser(app.User)
		resp.User = &user
	}
	return resp
}

// UpdateApplicationRequest moves an application through review
type UpdateApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING SHORTLISTED REJECTED SELECTED"`
}

// ApplicationListResponse represents a paginated application listing
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   PaginationInfo        `json:"pagination"`
}
