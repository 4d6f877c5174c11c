package data

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jobtracker/jobtracker-api/internal/domain/model"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
)

const (
	jobStatusCountsQuery = `SELECT status, COUNT(*) FROM jobs WHERE created_by = $1 GROUP BY status`

	// Months are bucketed in UTC so labels do not depend on the session time zone.
	jobMonthlyCountsQuery = `
		SELECT
			EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int AS year,
			EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month,
			COUNT(*)
		FROM jobs
		WHERE created_by = $1
		GROUP BY year, month
		ORDER BY year DESC, month DESC
		LIMIT $2`
)

// Stats computes per-status totals and the most recent months with activity for owner.
// The monthly series is returned oldest first.
func (r *JobRepo) Stats(ctx context.Context, owner string) (*model.JobStats, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	var (
		counts  model.StatusCounts
		monthly []model.MonthlyApplication
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := r.statusCounts(gctx, owner)
		counts = c
		return err
	})
	g.Go(func() error {
		m, err := r.monthlyCounts(gctx, owner)
		monthly = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	return &model.JobStats{DefaultStats: counts, MonthlyApplications: monthly}, nil
}

func (r *JobRepo) statusCounts(ctx context.Context, owner string) (model.StatusCounts, error) {
	var counts model.StatusCounts

	rows, err := r.DB.QueryContext(ctx, jobStatusCountsQuery, owner)
	if err != nil {
		return counts, fmt.Errorf("count jobs by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return counts, fmt.Errorf("scan status count: %w", err)
		}
		counts.Add(model.JobStatus(status), n)
	}
	return counts, rows.Err()
}

func (r *JobRepo) monthlyCounts(ctx context.Context, owner string) ([]model.MonthlyApplication, error) {
	rows, err := r.DB.QueryContext(ctx, jobMonthlyCountsQuery, owner, model.MaxMonthlyApplications)
	if err != nil {
		return nil, fmt.Errorf("count jobs by month: %w", err)
	}
	defer rows.Close()

	out := make([]model.MonthlyApplication, 0, model.MaxMonthlyApplications)
	for rows.Next() {
		var year, month, n int
		if err := rows.Scan(&year, &month, &n); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		out = append(out, model.MonthlyApplication{
			Date:  model.MonthLabel(year, time.Month(month)),
			Count: n,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(out)
	return out, nil
}
