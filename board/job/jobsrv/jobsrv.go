package jobsrv

import (
	"context"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/Abraxas-365/nerdyjobs/pkg/iam/auth"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

// JobService answers the read side of the board: listings, details and filter options
type JobService struct {
	jobRepo job.Repository
}

// NewJobService creates a new instance of the job service
func NewJobService(jobRepo job.Repository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// storeError keeps domain errors from the repository and wraps everything else
func storeError(err error, msg string) error {
	if _, ok := errx.As(err); ok {
		return err
	}
	return job.ErrStoreFailed(err).WithDetail("operation", msg)
}

// ListJobs returns one page of approved jobs matching the filter.
// A page past the end yields an empty listing, not an error.
func (s *JobService) ListJobs(ctx context.Context, filter job.Filter, pageNumber int) (*job.ListingResponse, error) {
	q := filter.PublicQuery()

	page, items, err := s.window(ctx, q, pageNumber)
	if err != nil {
		return nil, err
	}

	return &job.ListingResponse{
		Title: filter.Title(),
		Items: items,
		Page:  page,
		Empty: len(items) == 0,
		Links: job.PageLinks(filter, page),
	}, nil
}

// window counts the matches, then reads the requested page. The two reads
// are independent and may disagree under concurrent writes.
func (s *JobService) window(ctx context.Context, q job.Query, pageNumber int) (kernel.Page, []job.JobResponse, error) {
	total, err := s.jobRepo.Count(ctx, q)
	if err != nil {
		return kernel.Page{}, nil, storeError(err, "count jobs")
	}

	page := kernel.NewPage(pageNumber, job.PageSize, total)
	jobs, err := s.jobRepo.List(ctx, q, page.Skip(), page.Size)
	if err != nil {
		return kernel.Page{}, nil, storeError(err, "list jobs")
	}

	items := make([]job.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, job.ToJobResponse(&jobs[i]))
	}
	return page, items, nil
}

// GetPublicJob returns an approved job; unapproved jobs do not exist publicly
func (s *JobService) GetPublicJob(ctx context.Context, slug string) (*job.JobResponse, error) {
	j, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, "get job")
	}
	if !j.IsPublic() {
		return nil, job.ErrJobNotFound().WithDetail("slug", slug)
	}

	resp := job.ToJobResponse(j)
	return &resp, nil
}

// Options lists the values the filter form offers
func (s *JobService) Options(ctx context.Context) (*job.OptionsResponse, error) {
	locations, err := s.jobRepo.DistinctLocations(ctx, job.ApprovedQuery())
	if err != nil {
		return nil, storeError(err, "list locations")
	}

	return &job.OptionsResponse{
		JobTypes:      job.JobTypes,
		LocationTypes: job.LocationTypes,
		Locations:     locations,
	}, nil
}

// ListPending returns submissions awaiting review, newest first
func (s *JobService) ListPending(ctx context.Context, actor *auth.Actor, pageNumber int) (*job.PendingResponse, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, job.ErrNotAuthorized()
	}

	page, items, err := s.window(ctx, job.PendingQuery(), pageNumber)
	if err != nil {
		return nil, err
	}

	return &job.PendingResponse{
		Items: items,
		Page:  page,
		Empty: len(items) == 0,
	}, nil
}

// GetJobForAdmin returns any job by slug, approved or not
func (s *JobService) GetJobForAdmin(ctx context.Context, actor *auth.Actor, slug string) (*job.JobResponse, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, job.ErrNotAuthorized()
	}

	j, err := s.jobRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, "get job")
	}

	resp := job.ToJobResponse(j)
	return &resp, nil
}
