package job

import (
	"time"

	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

// PageSize is the fixed number of jobs per listing page
const PageSize = 6

// LogoUpload is a company logo file received with a submission
type LogoUpload struct {
	Filename string
	Data     []byte
}

// CreateJobForm is the raw submission as entered on the form
type CreateJobForm struct {
	Title            string      `form:"title" validate:"required,max=100"`
	Type             string      `form:"type" validate:"required,jobtype"`
	CompanyName      string      `form:"companyName" validate:"required,max=100"`
	CompanyLogo      *LogoUpload `form:"-"`
	Description      string      `form:"description" validate:"max=5000"`
	Salary           string      `form:"salary" validate:"required,digits,max=9"`
	LocationType     string      `form:"locationType" validate:"required,locationtype"`
	Location         string      `form:"location" validate:"max=100"`
	ApplicationEmail string      `form:"applicationEmail" validate:"omitempty,email,max=100"`
	ApplicationURL   string      `form:"applicationUrl" validate:"omitempty,url,max=100"`
}

// ValidLogo is an uploaded logo that passed validation
type ValidLogo struct {
	Ext  string
	Data []byte
}

// CreateJobInput is a validated submission ready to persist
type CreateJobInput struct {
	Title            string
	Type             JobType
	CompanyName      string
	Logo             *ValidLogo
	Description      string
	Salary           int
	LocationType     LocationType
	Location         string
	ApplicationEmail string
	ApplicationURL   string
}

// FilterForm is the raw listing filter from the query string
type FilterForm struct {
	Q        string `query:"q" form:"q"`
	Type     string `query:"type" form:"type" validate:"omitempty,jobtype"`
	Location string `query:"location" form:"location"`
	Remote   string `query:"remote" form:"remote" validate:"omitempty,oneof=true false on off 1 0"`
}

// JobResponse - DTO for returning job data
type JobResponse struct {
	ID               kernel.JobID     `json:"id"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Type             JobType          `json:"type"`
	CompanyName      string           `json:"companyName"`
	CompanyLogoURL   kernel.BucketURL `json:"companyLogoUrl,omitempty"`
	LocationType     LocationType     `json:"locationType"`
	Location         string           `json:"location,omitempty"`
	ApplicationEmail string           `json:"applicationEmail,omitempty"`
	ApplicationURL   string           `json:"applicationUrl,omitempty"`
	ApplyLink        string           `json:"applyLink"`
	Description      string           `json:"description,omitempty"`
	Salary           int              `json:"salary"`
	Approved         bool             `json:"approved"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func ToJobResponse(j *Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		Slug:             j.Slug,
		Title:            j.Title,
		Type:             j.Type,
		CompanyName:      j.CompanyName,
		CompanyLogoURL:   j.CompanyLogoURL,
		LocationType:     j.LocationType,
		Location:         j.Location,
		ApplicationEmail: j.ApplicationEmail,
		ApplicationURL:   j.ApplicationURL,
		ApplyLink:        j.ApplyLink(),
		Description:      j.Description,
		Salary:           j.Salary,
		Approved:         j.Approved,
		CreatedAt:        j.CreatedAt,
	}
}

// Links to neighbouring pages; empty when that direction is hidden
type Links struct {
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

// ListingResponse is one page of the public job listing
type ListingResponse struct {
	Title string        `json:"title"`
	Items []JobResponse `json:"items"`
	Page  kernel.Page   `json:"page"`
	Empty bool          `json:"empty"`
	Links Links         `json:"links"`
}

// PendingResponse is one page of submissions awaiting review
type PendingResponse = kernel.Paginated[JobResponse]

// OptionsResponse feeds the filter form
type OptionsResponse struct {
	JobTypes      []JobType      `json:"jobTypes"`
	LocationTypes []LocationType `json:"locationTypes"`
	Locations     []string       `json:"locations"`
}

// ActionResult is returned by the review and submission actions when they fail
type ActionResult struct {
	Error  string      `json:"error,omitempty"`
	Fields FieldErrors `json:"fields,omitempty"`
}

// RedirectResponse accompanies a 303 after a successful action
type RedirectResponse struct {
	Redirect string `json:"redirect"`
	Slug     string `json:"slug,omitempty"`
}
