package jobsrv

import (
	"context"
	"errors"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/fsx"
	"github.com/Abraxas-365/nerdyjobs/pkg/iam/auth"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
	"github.com/Abraxas-365/nerdyjobs/pkg/logx"
)

// ReviewService holds the admin actions on submissions
type ReviewService struct {
	jobRepo    job.Repository
	fileSystem fsx.FileSystem
}

func NewReviewService(jobRepo job.Repository, fileSystem fsx.FileSystem) *ReviewService {
	return &ReviewService{
		jobRepo:    jobRepo,
		fileSystem: fileSystem,
	}
}

// Approve publishes a job. Approving an approved job succeeds without a write.
func (s *ReviewService) Approve(ctx context.Context, actor *auth.Actor, id kernel.JobID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return job.ErrNotAuthorized()
	}

	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return storeError(err, "get job")
	}

	if !j.Approve() {
		return nil
	}

	if err := s.jobRepo.Approve(ctx, id); err != nil {
		return storeError(err, "approve job")
	}

	logx.Infof("job %s approved by %s", j.Slug, actor.Email)
	return nil
}

// Delete removes the job and its logo. The logo goes first; if that fails
// the job is kept so the delete can be retried.
func (s *ReviewService) Delete(ctx context.Context, actor *auth.Actor, id kernel.JobID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return job.ErrNotAuthorized()
	}

	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return storeError(err, "get job")
	}

	if j.HasLogo() {
		if err := s.fileSystem.DeleteFile(ctx, j.CompanyLogoURL.String()); err != nil && !errors.Is(err, fsx.ErrNotExist) {
			return job.ErrLogoDeleteFailed(err).WithDetail("url", j.CompanyLogoURL.String())
		}
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return storeError(err, "delete job")
	}

	logx.Infof("job %s deleted by %s", j.Slug, actor.Email)
	return nil
}
