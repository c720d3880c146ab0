package job

import (
	"context"

	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

type Repository interface {
	// Create stores a new job and assigns its ID
	Create(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID regardless of approval
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// GetBySlug retrieves a job by slug regardless of approval
	GetBySlug(ctx context.Context, slug string) (*Job, error)

	// Approve marks a stored job approved
	Approve(ctx context.Context, id kernel.JobID) error

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// List returns the jobs matching q, newest first
	List(ctx context.Context, q Query, skip, take int) ([]Job, error)

	// Count returns how many jobs match q
	Count(ctx context.Context, q Query) (int, error)

	// DistinctLocations returns the non-empty locations of jobs matching q, sorted
	DistinctLocations(ctx context.Context, q Query) ([]string, error)
}
