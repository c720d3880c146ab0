package job

import (
	"net/http"
	"strings"

	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeJobAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job already exists")
	CodeNotAuthorized    = ErrRegistry.Register("NOT_AUTHORIZED", errx.TypeAuthorization, http.StatusForbidden, "Not authorized")
	CodeValidationFailed = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Invalid job posting")
	CodeInvalidFilter    = ErrRegistry.Register("INVALID_FILTER", errx.TypeValidation, http.StatusBadRequest, "Invalid job filter")
	CodeInvalidID        = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid job id")
	CodeLogoUploadFailed = ErrRegistry.Register("LOGO_UPLOAD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to store company logo")
	CodeLogoDeleteFailed = ErrRegistry.Register("LOGO_DELETE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to delete company logo")
	CodeStoreFailed      = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job store error")
)

// FieldErrors maps a form field to its first violation
type FieldErrors map[string]string

// fieldOrder is the order fields appear on the submission form
var fieldOrder = []string{
	"title", "type", "companyName", "companyLogo", "description", "salary",
	"locationType", "location", "applicationEmail", "applicationUrl",
	"q", "remote",
}

// Messages returns the violations in form order
func (f FieldErrors) Messages() []string {
	msgs := make([]string, 0, len(f))
	seen := make(map[string]bool, len(f))
	for _, field := range fieldOrder {
		if msg, ok := f[field]; ok {
			msgs = append(msgs, msg)
			seen[field] = true
		}
	}
	for field, msg := range f {
		if !seen[field] {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (f FieldErrors) Error() string {
	return strings.Join(f.Messages(), "; ")
}

func (f FieldErrors) details() map[string]any {
	d := make(map[string]any, len(f))
	for k, v := range f {
		d[k] = v
	}
	return d
}

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrNotAuthorized() *errx.Error {
	return ErrRegistry.New(CodeNotAuthorized)
}

func ErrValidationFailed(fields FieldErrors) *errx.Error {
	return ErrRegistry.New(CodeValidationFailed).WithDetails(fields.details()).WithCause(fields)
}

func ErrInvalidFilter(fields FieldErrors) *errx.Error {
	return ErrRegistry.New(CodeInvalidFilter).WithDetails(fields.details()).WithCause(fields)
}

func ErrInvalidID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrLogoUploadFailed(err error) *errx.Error {
	return ErrRegistry.New(CodeLogoUploadFailed).WithCause(err)
}

func ErrLogoDeleteFailed(err error) *errx.Error {
	return ErrRegistry.New(CodeLogoDeleteFailed).WithCause(err)
}

func ErrStoreFailed(err error) *errx.Error {
	return ErrRegistry.New(CodeStoreFailed).WithCause(err)
}

// FieldErrorsOf extracts the field violations carried by a validation error
func FieldErrorsOf(err error) (FieldErrors, bool) {
	e, ok := errx.As(err)
	if !ok {
		return nil, false
	}
	f, ok := e.Err.(FieldErrors)
	return f, ok
}
