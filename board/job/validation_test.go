package job

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
)

var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}

func validForm() CreateJobForm {
	return CreateJobForm{
		Title:            "  Senior Go Engineer ",
		Type:             "Full-time",
		CompanyName:      " Acme ",
		Salary:           "120000",
		LocationType:     "On-site",
		Location:         "Berlin",
		ApplicationEmail: "jobs@acme.io",
	}
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	if !errx.IsCode(err, CodeValidationFailed) {
		t.Fatalf("err = %v, want %s", err, CodeValidationFailed)
	}
	fields, ok := FieldErrorsOf(err)
	if !ok {
		t.Fatalf("no field errors in %v", err)
	}
	return fields
}

func TestValidateCreateAcceptsAndTrims(t *testing.T) {
	in, err := ValidateCreate(validForm())
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	if in.Title != "Senior Go Engineer" || in.CompanyName != "Acme" {
		t.Fatalf("strings not trimmed: %+v", in)
	}
	if in.Salary != 120000 || in.Type != JobTypeFullTime || in.LocationType != LocationOnSite {
		t.Fatalf("input = %+v", in)
	}
	if in.Logo != nil {
		t.Fatal("no logo expected")
	}
}

func TestValidateCreateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateJobForm)
		field  string
		msg    string
	}{
		{"missing title", func(f *CreateJobForm) { f.Title = "   " }, "title", "Required"},
		{"long title", func(f *CreateJobForm) { f.Title = strings.Repeat("a", 101) }, "title", "Must be at most 100 characters"},
		{"bad type", func(f *CreateJobForm) { f.Type = "Gig" }, "type", "Invalid job type"},
		{"missing company", func(f *CreateJobForm) { f.CompanyName = "" }, "companyName", "Required"},
		{"long description", func(f *CreateJobForm) { f.Description = strings.Repeat("x", 5001) }, "description", "Must be at most 5000 characters"},
		{"salary letters", func(f *CreateJobForm) { f.Salary = "12k" }, "salary", "Must be a number"},
		{"salary too long", func(f *CreateJobForm) { f.Salary = "1234567890" }, "salary", "Number can't be longer than 9 digits"},
		{"salary zero", func(f *CreateJobForm) { f.Salary = "0" }, "salary", "Salary must be greater than 0"},
		{"salary negative", func(f *CreateJobForm) { f.Salary = "-5" }, "salary", "Must be a number"},
		{"bad location type", func(f *CreateJobForm) { f.LocationType = "Moon" }, "locationType", "Invalid location type"},
		{"on-site without location", func(f *CreateJobForm) { f.Location = "" }, "location", "Location is required for on-site and hybrid jobs"},
		{"hybrid without location", func(f *CreateJobForm) { f.LocationType = "Hybrid"; f.Location = " " }, "location", "Location is required for on-site and hybrid jobs"},
		{"bad email", func(f *CreateJobForm) { f.ApplicationEmail = "nope" }, "applicationEmail", "Invalid email address"},
		{"bad url", func(f *CreateJobForm) { f.ApplicationURL = "acme.io/apply" }, "applicationUrl", "Invalid URL"},
		{"no contact", func(f *CreateJobForm) { f.ApplicationEmail = "" }, "applicationEmail", "Email or url is required"},
		{"logo not image", func(f *CreateJobForm) {
			f.CompanyLogo = &LogoUpload{Filename: "logo.png", Data: []byte("plain text, not an image")}
		}, "companyLogo", "Must be an image file"},
		{"logo too big", func(f *CreateJobForm) {
			data := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxLogoSize)...)
			f.CompanyLogo = &LogoUpload{Filename: "logo.png", Data: data}
		}, "companyLogo", "File must be less than 2MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			in, err := ValidateCreate(form)
			if in != nil {
				t.Fatalf("input returned alongside error: %+v", in)
			}
			fields := fieldErrors(t, err)
			if fields[tt.field] != tt.msg {
				t.Fatalf("fields = %v, want %s=%q", fields, tt.field, tt.msg)
			}
		})
	}
}

func TestValidateCreateRemoteWithoutLocation(t *testing.T) {
	form := validForm()
	form.LocationType = "Remote"
	form.Location = ""
	if _, err := ValidateCreate(form); err != nil {
		t.Fatalf("remote job without location rejected: %v", err)
	}
}

func TestValidateCreateURLOnly(t *testing.T) {
	form := validForm()
	form.ApplicationEmail = ""
	form.ApplicationURL = "https://acme.io/apply"
	if _, err := ValidateCreate(form); err != nil {
		t.Fatalf("url-only contact rejected: %v", err)
	}
}

func TestValidateCreateReportsEveryField(t *testing.T) {
	fields := fieldErrors(t, func() error {
		_, err := ValidateCreate(CreateJobForm{})
		return err
	}())
	for _, f := range []string{"title", "type", "companyName", "salary", "locationType", "applicationEmail"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing violation for %s in %v", f, fields)
		}
	}
	if msgs := fields.Messages(); msgs[0] != "Required" || len(msgs) != len(fields) {
		t.Errorf("messages = %v", msgs)
	}
}

func TestValidateCreateLogo(t *testing.T) {
	form := validForm()
	form.CompanyLogo = &LogoUpload{Filename: "Logo.PNG", Data: pngHeader}
	in, err := ValidateCreate(form)
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	if in.Logo == nil || in.Logo.Ext != ".png" {
		t.Fatalf("logo = %+v", in.Logo)
	}

	form.CompanyLogo = &LogoUpload{Filename: "logo", Data: pngHeader}
	in, err = ValidateCreate(form)
	if err != nil || in.Logo.Ext != ".png" {
		t.Fatalf("sniffed extension: %+v, %v", in, err)
	}

	form.CompanyLogo = &LogoUpload{Filename: "", Data: nil}
	in, err = ValidateCreate(form)
	if err != nil || in.Logo != nil {
		t.Fatalf("empty upload should mean no logo: %+v, %v", in, err)
	}
}

func TestValidateFilter(t *testing.T) {
	f, err := ValidateFilter(FilterForm{Q: "  go  dev ", Type: "Contract", Location: " Berlin ", Remote: "on"})
	if err != nil {
		t.Fatalf("ValidateFilter: %v", err)
	}
	want := Filter{Q: "go  dev", Type: JobTypeContract, Location: "Berlin", Remote: true}
	if f != want {
		t.Fatalf("filter = %+v, want %+v", f, want)
	}

	f, err = ValidateFilter(FilterForm{})
	if err != nil || !f.IsEmpty() {
		t.Fatalf("empty filter: %+v, %v", f, err)
	}

	for _, remote := range []string{"false", "off", "0", ""} {
		if f, err := ValidateFilter(FilterForm{Remote: remote}); err != nil || f.Remote {
			t.Errorf("remote=%q: %+v, %v", remote, f, err)
		}
	}

	if _, err := ValidateFilter(FilterForm{Type: "Gig"}); !errx.IsCode(err, CodeInvalidFilter) {
		t.Fatalf("bad type: err = %v", err)
	}
	if _, err := ValidateFilter(FilterForm{Remote: "maybe"}); !errx.IsCode(err, CodeInvalidFilter) {
		t.Fatalf("bad remote: err = %v", err)
	}
}
