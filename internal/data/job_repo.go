package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jobtracker/jobtracker-api/internal/data/pgxutil"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
)

// JobRepo provides owner-scoped database operations for jobs.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: systemClock}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

const jobReturning = ` RETURNING id, company, position, status, job_type, job_location, created_by, created_at, updated_at`

const (
	jobGetByIDQuery = `
		SELECT id, company, position, status, job_type, job_location, created_by, created_at, updated_at
		FROM jobs
		WHERE id = $1 AND created_by = $2`

	jobInsertQuery = `
		INSERT INTO jobs (company, position, status, job_type, job_location, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)` + jobReturning

	jobUpdateQuery = `
		UPDATE jobs SET
			company = $1,
			position = $2,
			status = COALESCE($3, status),
			job_type = COALESCE($4, job_type),
			job_location = COALESCE($5, job_location),
			updated_at = $6
		WHERE id = $7 AND created_by = $8` + jobReturning

	jobDeleteQuery = `DELETE FROM jobs WHERE id = $1 AND created_by = $2`
)

// List returns one page of q and the total number of rows matching q's filters.
// The count and the page are built from the same condition set.
func (r *JobRepo) List(ctx context.Context, q model.JobQuery) ([]*model.Job, int, error) {
	if err := requireOwner(q.OwnerID); err != nil {
		return nil, 0, err
	}

	lq := jobListQuery(q)
	countSQL, countArgs := lq.CountSQL()
	pageSQL, pageArgs := lq.PageSQL()

	var (
		total   int
		rowsOut []model.Job
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if err := conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count jobs: %w", err)
		}
		rows, err := conn.Query(ctx, pageSQL, pageArgs...)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		return nil, 0, apperrors.MapDBError(err)
	}

	res := make([]*model.Job, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, total, nil
}

// GetByID retrieves a job owned by owner.
func (r *JobRepo) GetByID(ctx context.Context, owner, id string) (*model.Job, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if !isUUID(id) {
		return nil, jobNotFound(id)
	}
	return r.one(ctx, id, jobGetByIDQuery, jobKeyArgs(owner, id)...)
}

// Create inserts a new job. req must already be validated; its CreatedBy is the owner.
func (r *JobRepo) Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if err := requireOwner(req.CreatedBy); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	return r.one(ctx, "", jobInsertQuery,
		req.Company,
		req.Position,
		string(req.Status),
		string(req.JobType),
		req.JobLocation,
		req.CreatedBy,
		now,
	)
}

// Update replaces company and position and any supplied optional fields of a job owned by owner.
func (r *JobRepo) Update(ctx context.Context, owner, id string, req model.UpdateJobRequest) (*model.Job, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if !isUUID(id) {
		return nil, jobNotFound(id)
	}

	return r.one(ctx, id, jobUpdateQuery, jobUpdateArgs(owner, id, req, r.timeProvider.Now().UTC())...)
}

// Delete removes a job owned by owner. It reports false when no such job exists.
func (r *JobRepo) Delete(ctx context.Context, owner, id string) (bool, error) {
	if err := requireOwner(owner); err != nil {
		return false, err
	}
	if !isUUID(id) {
		return false, nil
	}

	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, jobDeleteQuery, jobKeyArgs(owner, id)...)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete job: %w", err))
	}
	return affected > 0, nil
}

// one runs a statement expected to yield exactly one job row.
// A miss is reported as not found for id.
func (r *JobRepo) one(ctx context.Context, id, q string, args ...any) (*model.Job, error) {
	job, err := pgxutil.CollectOne[model.Job](ctx, r.DB, q, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jobNotFound(id)
		}
		return nil, apperrors.MapDBError(err)
	}
	return &job, nil
}

func jobNotFound(id string) error {
	e := apperrors.NotFoundf("No job with id %s", id)
	e.Cause = ErrJobNotFound
	return e
}

// requireOwner rejects owner identifiers that cannot be a users.id.
func requireOwner(owner string) error {
	if _, err := uuid.Parse(owner); err != nil {
		return apperrors.InvalidIdentity(owner, err)
	}
	return nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// jobKeyArgs binds jobGetByIDQuery and jobDeleteQuery.
func jobKeyArgs(owner, id string) []any {
	return []any{id, owner}
}

// jobUpdateArgs binds jobUpdateQuery. Absent status or job type keep the stored value.
func jobUpdateArgs(owner, id string, req model.UpdateJobRequest, now time.Time) []any {
	var status, jobType *string
	if req.Status != nil {
		s := string(*req.Status)
		status = &s
	}
	if req.JobType != nil {
		t := string(*req.JobType)
		jobType = &t
	}
	return []any{
		req.Company,
		req.Position,
		status,
		jobType,
		req.JobLocation,
		now,
		id,
		owner,
	}
}
