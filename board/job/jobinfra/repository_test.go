package jobinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
)

func newSQLiteRepository(t *testing.T) *SQLJobRepository {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return NewSQLJobRepository(db)
}

// forEachRepository runs the same contract against every implementation
func forEachRepository(t *testing.T, fn func(t *testing.T, repo job.Repository)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryJobRepository()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteRepository(t)) })
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newJob(n int, approved bool) *job.Job {
	return &job.Job{
		Slug:             fmt.Sprintf("job-%02d", n),
		Title:            fmt.Sprintf("Engineer %02d", n),
		Type:             job.JobTypeFullTime,
		CompanyName:      "Acme",
		LocationType:     job.LocationOnSite,
		Location:         "Berlin",
		ApplicationEmail: "jobs@acme.io",
		Salary:           1000 + n,
		Approved:         approved,
		CreatedAt:        baseTime.Add(time.Duration(n) * time.Minute),
	}
}

func mustCreate(t *testing.T, repo job.Repository, j *job.Job) *job.Job {
	t.Helper()
	if err := repo.Create(context.Background(), j); err != nil {
		t.Fatalf("Create(%s): %v", j.Slug, err)
	}
	return j
}

func TestRepositoryCreateAndGet(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo job.Repository) {
		ctx := context.Background()
		j := newJob(1, false)
		j.CompanyLogoURL = "https://cdn.example.com/company_logos/job-01.png"
		j.Description = "**markdown** kept verbatim"
		mustCreate(t, repo, j)

		if j.ID.IsEmpty() {
			t.Fatal("id not assigned")
		}

		byID, err := repo.GetByID(ctx, j.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		bySlug, err := repo.GetBySlug(ctx, "job-01")
		if err != nil {
			t.Fatalf("GetBySlug: %v", err)
		}
		for _, got := range []*job.Job{byID, bySlug} {
			if got.ID != j.ID || got.Title != j.Title || got.CompanyLogoURL != j.CompanyLogoURL ||
				got.Description != j.Description || got.Approved || got.Salary != 1001 ||
				got.ApplicationURL != "" || got.Location != "Berlin" {
				t.Fatalf("got %+v", got)
			}
		}

		if _, err := repo.GetBySlug(ctx, "missing"); !errx.IsCode(err, job.CodeJobNotFound) {
			t.Fatalf("missing slug: err = %v", err)
		}
		if _, err := repo.GetByID(ctx, kernel.JobID(999)); !errx.IsCode(err, job.CodeJobNotFound) {
			t.Fatalf("missing id: err = %v", err)
		}
	})
}

func TestRepositoryDuplicateSlug(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo job.Repository) {
		mustCreate(t, repo, newJob(1, false))
		err := repo.Create(context.Background(), newJob(1, false))
		if !errx.IsCode(err, job.CodeJobAlreadyExists) {
			t.Fatalf("err = %v, want %s", err, job.CodeJobAlreadyExists)
		}
	})
}

func TestRepositoryApproveAndDelete(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo job.Repository) {
		ctx := context.Background()
		j := mustCreate(t, repo, newJob(1, false))

		if err := repo.Approve(ctx, j.ID); err != nil {
			t.Fatalf("Approve: %v", err)
		}
		got, _ := repo.GetByID(ctx, j.ID)
		if !got.Approved {
			t.Fatal("job not approved")
		}

		if err := repo.Delete(ctx, j.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, j.ID); !errx.IsCode(err, job.CodeJobNotFound) {
			t.Fatalf("deleted job still present: %v", err)
		}
		if err := repo.Delete(ctx, j.ID); !errx.IsCode(err, job.CodeJobNotFound) {
			t.Fatalf("second delete: err = %v", err)
		}
		if err := repo.Approve(ctx, j.ID); !errx.IsCode(err, job.CodeJobNotFound) {
			t.Fatalf("approve deleted: err = %v", err)
		}
	})
}

func TestRepositoryPagination(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo job.Repository) {
		ctx := context.Background()
		for i := 1; i <= 13; i++ {
			mustCreate(t, repo, newJob(i, true))
		}
		mustCreate(t, repo, newJob(14, false))

		q := job.Filter{}.PublicQuery()
		total, err := repo.Count(ctx, q)
		if err != nil || total != 13 {
			t.Fatalf("Count = %d, %v", total, err)
		}

		wantSizes := []int{6, 6, 1, 0}
		for i, want := range wantSizes {
			page := kernel.NewPage(i+1, job.PageSize, total)
			items, err := repo.List(ctx, q, page.Skip(), page.Size)
			if err != nil {
				t.Fatalf("List page %d: %v", i+1, err)
			}
			if len(items) != want {
				t.Fatalf("page %d has %d items, want %d", i+1, len(items), want)
			}
			if i == 0 && (items[0].Slug != "job-13" || items[5].Slug != "job-08") {
				t.Fatalf("page 1 not newest first: %s .. %s", items[0].Slug, items[5].Slug)
			}
		}
	})
}

func TestRepositoryFilters(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo job.Repository) {
		ctx := context.Background()

		goRemote := newJob(1, true)
		goRemote.Title = "Senior Go Engineer"
		goRemote.LocationType = job.LocationRemote
		goRemote.Location = ""
		mustCreate(t, repo, goRemote)

		rustLima := newJob(2, true)
		rustLima.Title = "Rust Developer"
		rustLima.CompanyName = "Go Fast Inc"
		rustLima.Type = job.JobTypeContract
		rustLima.Location = "Lima"
		mustCreate(t, repo, rustLima)

		percent := newJob(3, true)
		percent.Title = "100% remote-friendly QA"
		mustCreate(t, repo, percent)

		accented := newJob(5, true)
		accented.Title = "Ingénieur Logiciel"
		accented.CompanyName = "Éclair"
		mustCreate(t, repo, accented)

		hiddenGo := newJob(4, false)
		hiddenGo.Title = "Go Intern"
		mustCreate(t, repo, hiddenGo)

		tests := []struct {
			name   string
			filter job.Filter
			want   []string
		}{
			{"all approved", job.Filter{}, []string{"job-05", "job-03", "job-02", "job-01"}},
			{"word in title or company", job.Filter{Q: "go"}, []string{"job-02", "job-01"}},
			{"every word", job.Filter{Q: "GO senior"}, []string{"job-01"}},
			{"location type is searchable", job.Filter{Q: "remote"}, []string{"job-03", "job-01"}},
			{"non-ascii upper case query", job.Filter{Q: "ÉCLAIR"}, []string{"job-05"}},
			{"non-ascii lower case query", job.Filter{Q: "éclair"}, []string{"job-05"}},
			{"non-ascii title word", job.Filter{Q: "INGÉNIEUR logiciel"}, []string{"job-05"}},
			{"percent is literal", job.Filter{Q: "100%"}, []string{"job-03"}},
			{"underscore is literal", job.Filter{Q: "a_m"}, nil},
			{"type", job.Filter{Type: job.JobTypeContract}, []string{"job-02"}},
			{"location", job.Filter{Location: "Lima"}, []string{"job-02"}},
			{"remote", job.Filter{Remote: true}, []string{"job-01"}},
			{"combined", job.Filter{Q: "go", Remote: true}, []string{"job-01"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				q := tt.filter.PublicQuery()
				items, err := repo.List(ctx, q, 0, job.PageSize)
				if err != nil {
					t.Fatalf("List: %v", err)
				}
				var got []string
				for _, j := range items {
					got = append(got, j.Slug)
					if !j.Approved {
						t.Errorf("unapproved job %s listed", j.Slug)
					}
					if tt.filter.Remote && !j.IsRemote() {
						t.Errorf("non-remote job %s listed", j.Slug)
					}
				}
				if fmt.Sprint(got) != fmt.Sprint(tt.want) {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
				if n, _ := repo.Count(ctx, q); n != len(tt.want) {
					t.Fatalf("Count = %d, want %d", n, len(tt.want))
				}
			})
		}

		pending, err := repo.List(ctx, job.PendingQuery(), 0, job.PageSize)
		if err != nil || len(pending) != 1 || pending[0].Slug != "job-04" {
			t.Fatalf("pending = %v, %v", pending, err)
		}
	})
}

func TestRepositoryDistinctLocations(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo job.Repository) {
		ctx := context.Background()
		for i, loc := range []string{"Lima", "Berlin", "Lima", ""} {
			j := newJob(i+1, true)
			j.Location = loc
			if loc == "" {
				j.LocationType = job.LocationRemote
			}
			mustCreate(t, repo, j)
		}
		hidden := newJob(9, false)
		hidden.Location = "Tokyo"
		mustCreate(t, repo, hidden)

		got, err := repo.DistinctLocations(ctx, job.ApprovedQuery())
		if err != nil {
			t.Fatalf("DistinctLocations: %v", err)
		}
		if fmt.Sprint(got) != "[Berlin Lima]" {
			t.Fatalf("locations = %v", got)
		}
	})
}
