package models

import (
	"time"
)

// JobStatus is the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

var jobStatusTransitions = map[JobStatus][]JobStatus{
	JobStatusOpen:   {JobStatusClosed},
	JobStatusClosed: {JobStatusOpen},
}

// CanTransitionTo reports whether the status may move to the target state.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	for _, allowed := range jobStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known job status.
func (s JobStatus) IsValid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// ApplicationStatus is the review state of a job application
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "PENDING"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationSelected    ApplicationStatus = "SELECTED"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationShortlisted, ApplicationRejected},
	ApplicationShortlisted: {ApplicationSelected, ApplicationRejected},
	ApplicationRejected:    {},
	ApplicationSelected:    {},
}

// CanTransitionTo reports whether the status may move to the target state.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known application status.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationShortlisted, ApplicationRejected, ApplicationSelected:
		return true
	}
	return false
}

// Job defines the job posting model based on the 'jobs' table
type Job struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title" example:"Backend Engineer"`
	Company     string     `json:"company" db:"company" example:"Acme Corp"`
	Description string     `json:"description" db:"description"`
	Location    string     `json:"location" db:"location" example:"Bengaluru"`
	Package     *float64   `json:"package,omitempty" db:"package"`
	MinCGPA     *float64   `json:"minCgpa,omitempty" db:"min_cgpa"`
	Eligibility string     `json:"eligibility" db:"eligibility"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	Status      JobStatus  `json:"status" db:"status"`
	CreatedBy   *int64     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// JobApplication defines a student's application to a job
type JobApplication struct {
	ID        int64             `json:"id" db:"id"`
	JobID     int64             `json:"jobId" db:"job_id"`
	UserID    int64             `json:"userId" db:"user_id"`
	Status    ApplicationStatus `json:"status" db:"status"`
	AppliedAt time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
	Job       *Job              `json:"job,omitempty"`  // Relation, no db tag
	User      *User             `json:"user,omitempty"` // Relation, no db tag
}
