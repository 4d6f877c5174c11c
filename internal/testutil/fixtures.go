package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"
)

var fixtureSeq atomic.Int64

// InsertUser creates a user row directly and returns its id.
func InsertUser(t TestingTB, db *sql.DB, name string) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	email := fmt.Sprintf("%s.%d@example.com", name, fixtureSeq.Add(1))
	var id string
	err := db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		name, email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert user %s: %v", name, err)
	}
	return id
}

// JobRow describes a job to insert with InsertJob.
type JobRow struct {
	Company   string
	Position  string
	Status    string
	JobType   string
	CreatedAt time.Time
}

// InsertJob creates a job row directly for owner, honoring CreatedAt when set.
func InsertJob(t TestingTB, db *sql.DB, owner string, row JobRow) string {
	t.Helper()

	if row.Company == "" {
		row.Company = "Acme"
	}
	if row.Position == "" {
		row.Position = "Engineer"
	}
	if row.Status == "" {
		row.Status = "pending"
	}
	if row.JobType == "" {
		row.JobType = "full-time"
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id string
	err := db.QueryRowContext(ctx, `
		INSERT INTO jobs (company, position, status, job_type, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`,
		row.Company, row.Position, row.Status, row.JobType, owner, row.CreatedAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert job: %v", err)
	}
	return id
}
