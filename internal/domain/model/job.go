// Package model defines the core data types shared across the job tracker.
package model

import (
	"strings"
	"time"

	"github.com/jobtracker/jobtracker-api/internal/domain/validation"
)

const (
	maxCompanyLen     = 50
	maxPositionLen    = 100
	maxJobLocationLen = 100

	// DefaultJobLocation is stored when a job is created without a location.
	DefaultJobLocation = "my city"
)

// JobStatus is the stage an application has reached.
type JobStatus string

// JobType is the kind of employment being applied for.
type JobType string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusInterview JobStatus = "interview"
	JobStatusDeclined  JobStatus = "declined"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeRemote     JobType = "remote"
	JobTypeInternship JobType = "internship"
)

// JobStatuses lists every status in display order.
func JobStatuses() []JobStatus {
	return []JobStatus{JobStatusPending, JobStatusInterview, JobStatusDeclined}
}

// JobTypes lists every job type in display order.
func JobTypes() []JobType {
	return []JobType{JobTypeFullTime, JobTypePartTime, JobTypeRemote, JobTypeInternship}
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInterview, JobStatusDeclined:
		return true
	default:
		return false
	}
}

// Valid returns true if the JobType is valid.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeRemote, JobTypeInternship:
		return true
	default:
		return false
	}
}

func statusOptions() []string {
	out := make([]string, 0, 3)
	for _, s := range JobStatuses() {
		out = append(out, string(s))
	}
	return out
}

func typeOptions() []string {
	out := make([]string, 0, 4)
	for _, t := range JobTypes() {
		out = append(out, string(t))
	}
	return out
}

// Job is a single tracked application. Every read and write is scoped by CreatedBy.
type Job struct {
	ID          string    `json:"id"          db:"id"`
	Company     string    `json:"company"     db:"company"`
	Position    string    `json:"position"    db:"position"`
	Status      JobStatus `json:"status"      db:"status"`
	JobType     JobType   `json:"jobType"     db:"job_type"`
	JobLocation string    `json:"jobLocation" db:"job_location"`
	CreatedBy   string    `json:"createdBy"   db:"created_by"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// CreateJobRequest represents parameters to create a Job.
// The owner is never read from the body; it is set from the caller identity.
type CreateJobRequest struct {
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Status      JobStatus `json:"status,omitempty"`
	JobType     JobType   `json:"jobType,omitempty"`
	JobLocation string    `json:"jobLocation,omitempty"`
	CreatedBy   string    `json:"-"`
}

// Validate checks field constraints and fills in defaults.
func (r *CreateJobRequest) Validate() error {
	r.Company = strings.TrimSpace(r.Company)
	r.Position = strings.TrimSpace(r.Position)
	r.JobLocation = strings.TrimSpace(r.JobLocation)

	err := validation.New().
		Validate("company", r.Company, validation.Required("Company", maxCompanyLen)).
		Validate("position", r.Position, validation.Required("Position", maxPositionLen)).
		Validate("status", string(r.Status), validation.OneOf("Status", statusOptions())).
		Validate("jobType", string(r.JobType), validation.OneOf("Job type", typeOptions())).
		Validate("jobLocation", r.JobLocation, validation.Optional("Job location", maxJobLocationLen)).
		Err()
	if err != nil {
		return err
	}

	if r.Status == "" {
		r.Status = JobStatusPending
	}
	if r.JobType == "" {
		r.JobType = JobTypeFullTime
	}
	if r.JobLocation == "" {
		r.JobLocation = DefaultJobLocation
	}
	return nil
}

// UpdateJobRequest represents parameters to update a Job. Company and Position
// are required; the remaining fields are left unchanged when omitted.
type UpdateJobRequest struct {
	Company     string     `json:"company"`
	Position    string     `json:"position"`
	Status      *JobStatus `json:"status,omitempty"`
	JobType     *JobType   `json:"jobType,omitempty"`
	JobLocation *string    `json:"jobLocation,omitempty"`
}

// Validate checks field constraints on a populated update.
func (r *UpdateJobRequest) Validate() error {
	r.Company = strings.TrimSpace(r.Company)
	r.Position = strings.TrimSpace(r.Position)
	if r.Status != nil && *r.Status == "" {
		r.Status = nil
	}
	if r.JobType != nil && *r.JobType == "" {
		r.JobType = nil
	}

	fv := validation.New().
		Validate("company", r.Company, validation.Required("Company", maxCompanyLen)).
		Validate("position", r.Position, validation.Required("Position", maxPositionLen))
	if r.Status != nil {
		fv.Validate("status", string(*r.Status), validation.OneOf("Status", statusOptions()))
	}
	if r.JobType != nil {
		fv.Validate("jobType", string(*r.JobType), validation.OneOf("Job type", typeOptions()))
	}
	if r.JobLocation != nil {
		loc := strings.TrimSpace(*r.JobLocation)
		r.JobLocation = &loc
		fv.Validate("jobLocation", loc, validation.Optional("Job location", maxJobLocationLen))
	}
	return fv.Err()
}
