package jobinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

// MemoryJobRepository keeps jobs in process memory. It backs the "memory"
// database driver and the service tests.
type MemoryJobRepository struct {
	mu     sync.RWMutex
	jobs   map[kernel.JobID]job.Job
	nextID int64
}

var _ job.Repository = (*MemoryJobRepository)(nil)

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{
		jobs: make(map[kernel.JobID]job.Job),
	}
}

func (r *MemoryJobRepository) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.jobs {
		if existing.Slug == j.Slug {
			return job.ErrJobAlreadyExists().WithDetail("slug", j.Slug)
		}
	}

	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = j.CreatedAt
	}
	r.nextID++
	j.ID = kernel.JobID(r.nextID)
	r.jobs[j.ID] = *j
	return nil
}

func (r *MemoryJobRepository) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	return &j, nil
}

func (r *MemoryJobRepository) GetBySlug(_ context.Context, slug string) (*job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.jobs {
		if j.Slug == slug {
			return &j, nil
		}
	}
	return nil, job.ErrJobNotFound()
}

func (r *MemoryJobRepository) Approve(_ context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	j.Approved = true
	j.UpdatedAt = time.Now()
	r.jobs[id] = j
	return nil
}

func (r *MemoryJobRepository) Delete(_ context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return job.ErrJobNotFound()
	}
	delete(r.jobs, id)
	return nil
}

// matching returns the jobs matching q, newest first
func (r *MemoryJobRepository) matching(q job.Query) []job.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if q.Matches(&j) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out
}

func (r *MemoryJobRepository) List(_ context.Context, q job.Query, skip, take int) ([]job.Job, error) {
	all := r.matching(q)
	if skip >= len(all) {
		return []job.Job{}, nil
	}
	end := skip + take
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], nil
}

func (r *MemoryJobRepository) Count(_ context.Context, q job.Query) (int, error) {
	return len(r.matching(q)), nil
}

func (r *MemoryJobRepository) DistinctLocations(_ context.Context, q job.Query) ([]string, error) {
	seen := make(map[string]bool)
	locations := []string{}
	for _, j := range r.matching(q) {
		if j.Location != "" && !seen[j.Location] {
			seen[j.Location] = true
			locations = append(locations, j.Location)
		}
	}
	sort.Strings(locations)
	return locations, nil
}
