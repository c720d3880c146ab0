package job

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// MaxLogoSize is the exclusive upper bound on logo uploads
const MaxLogoSize = 2 * 1024 * 1024

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the form field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		return JobType(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("locationtype", func(fl validator.FieldLevel) bool {
		return LocationType(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}))
	return v
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "max":
		if fe.Field() == "salary" {
			return fmt.Sprintf("Number can't be longer than %s digits", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "jobtype":
		return "Invalid job type"
	case "locationtype":
		return "Invalid location type"
	case "digits":
		return "Must be a number"
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid URL"
	default:
		return "Invalid value"
	}
}

func collect(err error, fields FieldErrors) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return nil
}

// ValidateCreate checks a submission and returns the typed input.
// On any violation the whole form is rejected with JOB.VALIDATION_FAILED
// carrying one message per offending field.
func ValidateCreate(form CreateJobForm) (*CreateJobInput, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Type = strings.TrimSpace(form.Type)
	form.CompanyName = strings.TrimSpace(form.CompanyName)
	form.Description = strings.TrimSpace(form.Description)
	form.Salary = strings.TrimSpace(form.Salary)
	form.LocationType = strings.TrimSpace(form.LocationType)
	form.Location = strings.TrimSpace(form.Location)
	form.ApplicationEmail = strings.TrimSpace(form.ApplicationEmail)
	form.ApplicationURL = strings.TrimSpace(form.ApplicationURL)

	fields := FieldErrors{}
	if err := collect(validate.Struct(form), fields); err != nil {
		return nil, err
	}

	var salary int
	if _, bad := fields["salary"]; !bad {
		n, err := strconv.Atoi(form.Salary)
		switch {
		case err != nil:
			fields["salary"] = "Must be a number"
		case n <= 0:
			fields["salary"] = "Salary must be greater than 0"
		default:
			salary = n
		}
	}

	locationType := LocationType(form.LocationType)
	if _, bad := fields["location"]; !bad && locationType.IsValid() &&
		locationType.RequiresLocation() && form.Location == "" {
		fields["location"] = "Location is required for on-site and hybrid jobs"
	}

	if form.ApplicationEmail == "" && form.ApplicationURL == "" {
		fields["applicationEmail"] = "Email or url is required"
	}

	logo, msg := validateLogo(form.CompanyLogo)
	if msg != "" {
		fields["companyLogo"] = msg
	}

	if len(fields) > 0 {
		return nil, ErrValidationFailed(fields)
	}

	return &CreateJobInput{
		Title:            form.Title,
		Type:             JobType(form.Type),
		CompanyName:      form.CompanyName,
		Logo:             logo,
		Description:      form.Description,
		Salary:           salary,
		LocationType:     locationType,
		Location:         form.Location,
		ApplicationEmail: form.ApplicationEmail,
		ApplicationURL:   form.ApplicationURL,
	}, nil
}

// validateLogo treats an empty upload as no logo
func validateLogo(upload *LogoUpload) (*ValidLogo, string) {
	if upload == nil || len(upload.Data) == 0 {
		return nil, ""
	}

	mtype := mimetype.Detect(upload.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, "Must be an image file"
	}
	if len(upload.Data) >= MaxLogoSize {
		return nil, "File must be less than 2MB"
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if ext == "" {
		ext = mtype.Extension()
	}

	return &ValidLogo{
		Ext:  ext,
		Data: upload.Data,
	}, ""
}

// ValidateFilter checks the listing filter. Every field is optional.
func ValidateFilter(form FilterForm) (Filter, error) {
	form.Q = strings.TrimSpace(form.Q)
	form.Type = strings.TrimSpace(form.Type)
	form.Location = strings.TrimSpace(form.Location)
	form.Remote = strings.ToLower(strings.TrimSpace(form.Remote))

	fields := FieldErrors{}
	if err := collect(validate.Struct(form), fields); err != nil {
		return Filter{}, err
	}
	if len(fields) > 0 {
		return Filter{}, ErrInvalidFilter(fields)
	}

	return Filter{
		Q:        form.Q,
		Type:     JobType(form.Type),
		Location: form.Location,
		Remote:   form.Remote == "true" || form.Remote == "on" || form.Remote == "1",
	}, nil
}
