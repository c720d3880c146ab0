package job

import (
	"strings"
	"time"

	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeTemporary  JobType = "Temporary"
	JobTypeInternship JobType = "Internship"
	JobTypeVolunteer  JobType = "Volunteer"
)

// JobTypes in display order
var JobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeContract,
	JobTypeTemporary,
	JobTypeInternship,
	JobTypeVolunteer,
}

func (t JobType) IsValid() bool {
	for _, v := range JobTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (t JobType) String() string { return string(t) }

// LocationType says where the work happens
type LocationType string

const (
	LocationRemote LocationType = "Remote"
	LocationOnSite LocationType = "On-site"
	LocationHybrid LocationType = "Hybrid"
)

var LocationTypes = []LocationType{
	LocationOnSite,
	LocationHybrid,
	LocationRemote,
}

func (l LocationType) IsValid() bool {
	for _, v := range LocationTypes {
		if l == v {
			return true
		}
	}
	return false
}

func (l LocationType) String() string { return string(l) }

// RequiresLocation is true for every location type except Remote
func (l LocationType) RequiresLocation() bool {
	return l != LocationRemote
}

type Job struct {
	ID               kernel.JobID     `db:"id" json:"id"`
	Slug             string           `db:"slug" json:"slug"`
	Title            string           `db:"title" json:"title"`
	Type             JobType          `db:"type" json:"type"`
	CompanyName      string           `db:"company_name" json:"companyName"`
	CompanyLogoURL   kernel.BucketURL `db:"company_logo_url" json:"companyLogoUrl,omitempty"`
	LocationType     LocationType     `db:"location_type" json:"locationType"`
	Location         string           `db:"location" json:"location,omitempty"`
	ApplicationEmail string           `db:"application_email" json:"applicationEmail,omitempty"`
	ApplicationURL   string           `db:"application_url" json:"applicationUrl,omitempty"`
	Description      string           `db:"description" json:"description,omitempty"`
	Salary           int              `db:"salary" json:"salary"`
	Approved         bool             `db:"approved" json:"approved"`
	CreatedAt        time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsRemote checks if the job can be done from anywhere
func (j *Job) IsRemote() bool {
	return j.LocationType == LocationRemote
}

// HasLogo checks if a company logo was uploaded with the job
func (j *Job) HasLogo() bool {
	return !j.CompanyLogoURL.IsEmpty()
}

// IsPublic reports whether the job may appear in public listings
func (j *Job) IsPublic() bool {
	return j.Approved
}

// Approve moves the job from unapproved to approved.
// It returns false when the job was already approved and nothing changed.
func (j *Job) Approve() bool {
	if j.Approved {
		return false
	}
	j.Approved = true
	j.UpdatedAt = time.Now()
	return true
}

// ApplyLink prefers the application email over the url
func (j *Job) ApplyLink() string {
	if j.ApplicationEmail != "" {
		return "mailto:" + j.ApplicationEmail
	}
	return j.ApplicationURL
}

// SearchText is the lowercase text free-text queries are matched against
func (j *Job) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		j.Title,
		j.CompanyName,
		string(j.Type),
		string(j.LocationType),
		j.Location,
	}, " "))
}
