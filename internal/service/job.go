package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobtracker/jobtracker-api/internal/core"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
)

// msgMissingCompanyPosition is returned when an update omits either required field.
const msgMissingCompanyPosition = "Please provide company and position"

const msgInvalidSearch = "Search must be valid UTF-8 text"

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo         core.JobRepository // Required: job repository
	MaxPageLimit int                // Optional: cap on the page size (model.DefaultMaxLimit when zero)
	Logger       *slog.Logger       // Optional: structured logger
}

// JobService provides owner-scoped business logic for job records.
//
// Every operation takes the caller's user id as owner; request bodies never
// choose the owner.
type JobService struct {
	repo     core.JobRepository
	maxLimit int
	logger   *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRepository is required")
	}

	maxLimit := opts.MaxPageLimit
	if maxLimit < 1 {
		maxLimit = model.DefaultMaxLimit
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "job_service")
		logger.Debug("JobService initialized", "max_page_limit", maxLimit)
	}

	return &JobService{repo: opts.Repo, maxLimit: maxLimit, logger: logger}, nil
}

// MustNewJobService constructs a new JobService and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewJobService(opts JobServiceOptions) *JobService {
	svc, err := NewJobService(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create JobService: %v", err))
	}
	return svc
}

// List normalizes params for owner and returns the requested page with totals.
func (s *JobService) List(ctx context.Context, owner string, params model.JobListParams) (*model.JobPage, error) {
	if !model.ValidSearch(params.Search) {
		return nil, apperrors.ValidationField("search", msgInvalidSearch)
	}
	q := params.Normalize(owner, s.maxLimit)

	jobs, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if jobs == nil {
		jobs = []*model.Job{}
	}

	return &model.JobPage{
		Jobs:       jobs,
		TotalJobs:  total,
		NumOfPages: q.NumPages(total),
	}, nil
}

// Get returns a single job owned by owner.
func (s *JobService) Get(ctx context.Context, owner, id string) (*model.Job, error) {
	job, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Create validates req and stores it as a job owned by owner.
// Any owner already present on req is overwritten.
func (s *JobService) Create(ctx context.Context, owner string, req model.CreateJobRequest) (*model.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, asValidationError(err)
	}
	req.CreatedBy = owner

	job, err := s.repo.Create(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "job created", "id", job.ID, "status", job.Status)
	}
	return job, nil
}

// Update replaces a job owned by owner. Company and position must both be present.
func (s *JobService) Update(ctx context.Context, owner, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if strings.TrimSpace(req.Company) == "" || strings.TrimSpace(req.Position) == "" {
		return nil, apperrors.Validation(msgMissingCompanyPosition)
	}
	if err := req.Validate(); err != nil {
		return nil, asValidationError(err)
	}

	job, err := s.repo.Update(ctx, owner, id, req)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "job updated", "id", job.ID, "status", job.Status)
	}
	return job, nil
}

// Delete removes a job owned by owner. A missing job is reported as not found.
func (s *JobService) Delete(ctx context.Context, owner, id string) error {
	deleted, err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if !deleted {
		return apperrors.NotFoundf("No job with id %s", id)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "job deleted", "id", id)
	}
	return nil
}

// Stats returns the status breakdown and monthly series for owner.
func (s *JobService) Stats(ctx context.Context, owner string) (*model.JobStats, error) {
	stats, err := s.repo.Stats(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	if stats.MonthlyApplications == nil {
		stats.MonthlyApplications = []model.MonthlyApplication{}
	}
	return stats, nil
}
