package jobsrv

import (
	"strings"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/Abraxas-365/nerdyjobs/pkg/logx"
)

// ToActionResult reduces a workflow error to the single message shown to the user
func ToActionResult(err error) job.ActionResult {
	if err == nil {
		return job.ActionResult{}
	}

	if fields, ok := job.FieldErrorsOf(err); ok && len(fields) > 0 {
		return job.ActionResult{Error: strings.Join(fields.Messages(), "; "), Fields: fields}
	}

	switch {
	case errx.IsType(err, errx.TypeValidation):
		e, _ := errx.As(err)
		return job.ActionResult{Error: e.Message}
	case errx.IsType(err, errx.TypeAuthorization):
		return job.ActionResult{Error: "Not authorized"}
	case errx.IsType(err, errx.TypeNotFound):
		return job.ActionResult{Error: "Job not found"}
	}

	logx.Errorf("action failed: %v", err)
	return job.ActionResult{Error: "Unexpected error"}
}
