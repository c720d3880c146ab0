package jobapi

import (
	"io"
	"mime/multipart"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/board/job/jobsrv"
	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/Abraxas-365/nerdyjobs/pkg/iam/auth"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const (
	SubmittedRedirect = "/job-submitted"
	AdminRedirect     = "/admin"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	jobs       *jobsrv.JobService
	submission *jobsrv.SubmissionService
	review     *jobsrv.ReviewService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(
	jobs *jobsrv.JobService,
	submission *jobsrv.SubmissionService,
	review *jobsrv.ReviewService,
) *Handlers {
	return &Handlers{
		jobs:       jobs,
		submission: submission,
		review:     review,
	}
}

// ListJobs returns one page of approved jobs
// GET /api/jobs?q=&type=&location=&remote=&page=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	var form job.FilterForm
	if err := c.QueryParser(&form); err != nil {
		return job.ErrInvalidFilter(job.FieldErrors{}).WithDetail("parse_error", err.Error())
	}

	filter, err := job.ValidateFilter(form)
	if err != nil {
		return err
	}

	resp, err := h.jobs.ListJobs(c.Context(), filter, kernel.ParsePageNumber(c.Query("page")))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Options lists job types, location types and the locations in use
// GET /api/jobs/options
func (h *Handlers) Options(c *fiber.Ctx) error {
	resp, err := h.jobs.Options(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetJob returns an approved job
// GET /api/jobs/:slug
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	resp, err := h.jobs.GetPublicJob(c.Context(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitJob accepts a multipart job posting with an optional companyLogo file
// POST /api/jobs
func (h *Handlers) SubmitJob(c *fiber.Ctx) error {
	var form job.CreateJobForm
	if err := c.BodyParser(&form); err != nil {
		return actionError(c, job.ErrValidationFailed(job.FieldErrors{}).WithDetail("parse_error", err.Error()))
	}

	if fh, err := c.FormFile("companyLogo"); err == nil {
		logo, err := readLogo(fh)
		if err != nil {
			return actionError(c, err)
		}
		form.CompanyLogo = logo
	}

	created, err := h.submission.Submit(c.Context(), form)
	if err != nil {
		return actionError(c, err)
	}

	return redirect(c, job.RedirectResponse{Redirect: SubmittedRedirect, Slug: created.Slug})
}

// readLogo reads at most one byte past the size limit so oversized files are
// still rejected by validation without buffering them whole
func readLogo(fh *multipart.FileHeader) (*job.LogoUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errx.Wrap(err, "failed to open uploaded logo", errx.TypeValidation)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, job.MaxLogoSize+1))
	if err != nil {
		return nil, errx.Wrap(err, "failed to read uploaded logo", errx.TypeValidation)
	}
	return &job.LogoUpload{Filename: fh.Filename, Data: data}, nil
}

// ListPending returns unapproved submissions
// GET /api/admin/jobs?page=
func (h *Handlers) ListPending(c *fiber.Ctx) error {
	resp, err := h.jobs.ListPending(c.Context(), auth.GetActor(c), kernel.ParsePageNumber(c.Query("page")))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetJobForAdmin returns any job by slug
// GET /api/admin/jobs/:slug
func (h *Handlers) GetJobForAdmin(c *fiber.Ctx) error {
	resp, err := h.jobs.GetJobForAdmin(c.Context(), auth.GetActor(c), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ApproveJob publishes a submission
// POST /api/admin/jobs/:id/approve
func (h *Handlers) ApproveJob(c *fiber.Ctx) error {
	id, err := adminJobID(c)
	if err != nil {
		return actionError(c, err)
	}

	if err := h.review.Approve(c.Context(), auth.GetActor(c), id); err != nil {
		return actionError(c, err)
	}

	return redirect(c, job.RedirectResponse{Redirect: AdminRedirect})
}

// DeleteJob removes a job and its logo
// POST /api/admin/jobs/:id/delete, DELETE /api/admin/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	id, err := adminJobID(c)
	if err != nil {
		return actionError(c, err)
	}

	if err := h.review.Delete(c.Context(), auth.GetActor(c), id); err != nil {
		return actionError(c, err)
	}

	return redirect(c, job.RedirectResponse{Redirect: AdminRedirect})
}

// adminJobID reads the :id param once the caller is known to be an admin,
// so anonymous callers are refused before their input is looked at
func adminJobID(c *fiber.Ctx) (kernel.JobID, error) {
	if err := auth.RequireAdmin(auth.GetActor(c)); err != nil {
		return 0, job.ErrNotAuthorized()
	}
	id, ok := kernel.ParseJobID(c.Params("id"))
	if !ok {
		return 0, job.ErrInvalidID().WithDetail("id", c.Params("id"))
	}
	return id, nil
}

// actionError answers a failed action with its ActionResult
func actionError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if e, ok := errx.As(err); ok {
		status = e.HTTPStatus
	}
	return c.Status(status).JSON(jobsrv.ToActionResult(err))
}

func redirect(c *fiber.Ctx, resp job.RedirectResponse) error {
	c.Set(fiber.HeaderLocation, resp.Redirect)
	return c.Status(fiber.StatusSeeOther).JSON(resp)
}

// RegisterRoutes mounts the public job routes and the admin review routes.
// identify resolves the optional bearer token; submitLimiter guards submissions.
func RegisterRoutes(app *fiber.App, handlers *Handlers, identify fiber.Handler, submitLimiter fiber.Handler) {
	api := app.Group("/api/jobs")

	api.Get("/", handlers.ListJobs)
	api.Get("/options", handlers.Options)
	api.Get("/:slug", handlers.GetJob)
	api.Post("/", submitLimiter, handlers.SubmitJob)

	admin := app.Group("/api/admin/jobs", identify)

	admin.Get("/", handlers.ListPending)
	admin.Get("/:slug", handlers.GetJobForAdmin)
	admin.Post("/:id/approve", handlers.ApproveJob)
	admin.Post("/:id/delete", handlers.DeleteJob)
	admin.Delete("/:id", handlers.DeleteJob)
}
