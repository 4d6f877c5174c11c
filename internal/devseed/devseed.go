// Package devseed populates a database with the read-only demo account and a spread of sample jobs.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobtracker/jobtracker-api/internal/data"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
)

const (
	// JobCount is the number of sample jobs created for the demo account.
	JobCount = 75
	// Months is how far back the sample jobs are spread, counting the current month.
	Months = 8

	defaultEmail    = "testuser@test.com"
	defaultName     = "Demo"
	defaultPassword = "secret123"
)

const (
	upsertDemoUserQuery = `
		INSERT INTO users (id, name, last_name, email, location, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			updated_at = now()`

	deleteDemoJobsQuery = `DELETE FROM jobs WHERE created_by = $1`
)

// Options configures a seeding run. UserID is required; the rest have defaults.
type Options struct {
	UserID   string
	Email    string
	Name     string
	Password string
	Now      func() time.Time
	Logger   *slog.Logger
}

// Result summarizes a seeding run.
type Result struct {
	UserID string
	Email  string
	Jobs   int
}

// SeedJob is one planned job with the creation time it is backdated to.
type SeedJob struct {
	Request   model.CreateJobRequest
	CreatedAt time.Time
}

// Run upserts the demo user and replaces its jobs with a fresh sample set.
// Running it twice leaves the same number of jobs.
func Run(ctx context.Context, db *sql.DB, opts Options) (Result, error) {
	if db == nil {
		return Result{}, errors.New("database is required")
	}
	opts, err := withDefaults(opts)
	if err != nil {
		return Result{}, err
	}
	logger := opts.Logger

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, fmt.Errorf("hash demo password: %w", err)
	}

	email := model.NormalizeEmail(opts.Email)
	if _, err = db.ExecContext(ctx, upsertDemoUserQuery,
		opts.UserID, opts.Name, "lastName", email, model.DefaultJobLocation, string(hash),
	); err != nil {
		return Result{}, fmt.Errorf("upsert demo user: %w", err)
	}
	logger.InfoContext(ctx, "demo user ready", "user_id", opts.UserID, "email", email)

	removed, err := db.ExecContext(ctx, deleteDemoJobsQuery, opts.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("clear demo jobs: %w", err)
	}
	if n, rowsErr := removed.RowsAffected(); rowsErr == nil && n > 0 {
		logger.InfoContext(ctx, "removed previous demo jobs", "count", n)
	}

	// Each insert is backdated to its planned creation time.
	var createdAt time.Time
	repo := data.NewJobRepoWithTimeProvider(db, data.TimeFunc(func() time.Time { return createdAt }))
	created := 0
	for _, job := range PlanJobs(opts.UserID, opts.Now()) {
		req := job.Request
		if err = req.Validate(); err != nil {
			return Result{}, fmt.Errorf("sample job %d: %w", created, err)
		}
		createdAt = job.CreatedAt
		if _, err = repo.Create(ctx, &req); err != nil {
			return Result{}, fmt.Errorf("create sample job %d: %w", created, err)
		}
		created++
	}
	logger.InfoContext(ctx, "created demo jobs", "count", created)

	return Result{UserID: opts.UserID, Email: email, Jobs: created}, nil
}

func withDefaults(opts Options) (Options, error) {
	if _, err := uuid.Parse(opts.UserID); err != nil {
		return opts, fmt.Errorf("demo user id %q must be a UUID", opts.UserID)
	}
	if opts.Email == "" {
		opts.Email = defaultEmail
	}
	if opts.Name == "" {
		opts.Name = defaultName
	}
	if opts.Password == "" {
		opts.Password = defaultPassword
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts, nil
}

var (
	companies = []string{
		"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries", "Wayne Enterprises",
		"Wonka", "Cyberdyne", "Soylent", "Tyrell", "Vandelay Industries", "Pied Piper", "Aperture",
		"Massive Dynamic",
	}
	positions = []string{
		"Backend Engineer", "Frontend Developer", "Site Reliability Engineer", "Data Analyst",
		"Product Designer", "QA Engineer", "Platform Engineer", "Mobile Developer",
		"Engineering Manager", "Security Analyst", "Technical Writer", "Support Engineer",
	}
	locations = []string{
		"Berlin", "Lisbon", "Toronto", "Austin", "Remote", "Singapore", "Warsaw", "my city",
	}
	statuses = []model.JobStatus{
		model.JobStatusPending, model.JobStatusInterview, model.JobStatusPending,
		model.JobStatusDeclined, model.JobStatusInterview,
	}
	jobTypes = []model.JobType{
		model.JobTypeFullTime, model.JobTypeRemote, model.JobTypePartTime, model.JobTypeInternship,
	}
)

// PlanJobs returns JobCount sample jobs for owner, spread round-robin across the
// Months calendar months ending with the month of now. No job is dated after now.
func PlanJobs(owner string, now time.Time) []SeedJob {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	jobs := make([]SeedJob, 0, JobCount)
	for i := range JobCount {
		monthStart := thisMonth.AddDate(0, -(i % Months), 0)
		createdAt := monthStart.Add(time.Duration((i*7)%27)*24*time.Hour + time.Duration(i%24)*time.Hour)
		if createdAt.After(now) {
			createdAt = monthStart
		}

		jobs = append(jobs, SeedJob{
			Request: model.CreateJobRequest{
				Company:     companies[i%len(companies)],
				Position:    positions[(i*5)%len(positions)],
				Status:      statuses[i%len(statuses)],
				JobType:     jobTypes[(i/2)%len(jobTypes)],
				JobLocation: locations[(i*3)%len(locations)],
				CreatedBy:   owner,
			},
			CreatedAt: createdAt,
		})
	}
	return jobs
}
