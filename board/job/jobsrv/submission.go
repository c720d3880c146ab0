package jobsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/fsx"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
	"github.com/Abraxas-365/nerdyjobs/pkg/logx"
)

// LogoDir is the object store folder company logos are written to
const LogoDir = "company_logos"

// SubmissionService turns employer submissions into unapproved jobs
type SubmissionService struct {
	jobRepo    job.Repository
	fileSystem fsx.FileSystem
}

func NewSubmissionService(jobRepo job.Repository, fileSystem fsx.FileSystem) *SubmissionService {
	return &SubmissionService{
		jobRepo:    jobRepo,
		fileSystem: fileSystem,
	}
}

// Submit validates the form, stores the logo if any and persists the job.
// Nothing is written when validation fails, and no job row exists when the
// logo could not be stored.
func (s *SubmissionService) Submit(ctx context.Context, form job.CreateJobForm) (*job.Job, error) {
	input, err := job.ValidateCreate(form)
	if err != nil {
		return nil, err
	}

	slug := job.NewSlug(input.Title)

	var logoURL kernel.BucketURL
	if input.Logo != nil {
		path := s.fileSystem.Join(LogoDir, slug+input.Logo.Ext)
		if err := s.fileSystem.WriteFile(ctx, path, input.Logo.Data); err != nil {
			return nil, job.ErrLogoUploadFailed(err).WithDetail("path", path)
		}
		logoURL = kernel.BucketURL(s.fileSystem.URL(path))
	}

	now := time.Now()
	newJob := &job.Job{
		Slug:             slug,
		Title:            input.Title,
		Type:             input.Type,
		CompanyName:      input.CompanyName,
		CompanyLogoURL:   logoURL,
		LocationType:     input.LocationType,
		Location:         input.Location,
		ApplicationEmail: input.ApplicationEmail,
		ApplicationURL:   input.ApplicationURL,
		Description:      input.Description,
		Salary:           input.Salary,
		Approved:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		if !logoURL.IsEmpty() {
			if derr := s.fileSystem.DeleteFile(ctx, logoURL.String()); derr != nil {
				logx.Warnf("failed to remove orphan logo %s: %v", logoURL, derr)
			}
		}
		return nil, storeError(err, "create job")
	}

	logx.Infof("job %s submitted for review", newJob.Slug)
	return newJob, nil
}
