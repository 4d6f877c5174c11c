// Package core defines the repository ports the service layer depends on.
package core

import (
	"context"

	"github.com/jobtracker/jobtracker-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not on the data package.

// JobRepository defines the interface for job data operations.
// Every method is scoped to an owner; rows belonging to other owners are reported as not found.
type JobRepository interface {
	// List returns one page of q and the number of rows matching q's filters, ignoring paging.
	List(ctx context.Context, q model.JobQuery) ([]*model.Job, int, error)
	GetByID(ctx context.Context, owner, id string) (*model.Job, error)
	Create(ctx context.Context, req *model.CreateJobRequest) (*model.Job, error)
	Update(ctx context.Context, owner, id string, req model.UpdateJobRequest) (*model.Job, error)
	Delete(ctx context.Context, owner, id string) (bool, error)
	// Stats returns the status breakdown and the monthly series for owner.
	Stats(ctx context.Context, owner string) (*model.JobStats, error)
}

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
}
