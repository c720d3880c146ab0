package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/nerdyjobs/board/job"
	"github.com/Abraxas-365/nerdyjobs/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLJobRepository implements job.Repository on PostgreSQL or SQLite.
// Queries are written with ? placeholders and rebound for the driver.
type SQLJobRepository struct {
	db *sqlx.DB
}

var _ job.Repository = (*SQLJobRepository)(nil)

// NewSQLJobRepository creates a new SQL job repository
func NewSQLJobRepository(db *sqlx.DB) *SQLJobRepository {
	return &SQLJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID               int64          `db:"id"`
	Slug             string         `db:"slug"`
	Title            string         `db:"title"`
	Type             string         `db:"type"`
	CompanyName      string         `db:"company_name"`
	CompanyLogoURL   sql.NullString `db:"company_logo_url"`
	LocationType     string         `db:"location_type"`
	Location         sql.NullString `db:"location"`
	ApplicationEmail sql.NullString `db:"application_email"`
	ApplicationURL   sql.NullString `db:"application_url"`
	Description      sql.NullString `db:"description"`
	Salary           int            `db:"salary"`
	Approved         bool           `db:"approved"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	SearchText       string         `db:"search_text"`
}

const jobColumns = `
	id, slug, title, type, company_name, company_logo_url,
	location_type, location, application_email, application_url,
	description, salary, approved, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	return &job.Job{
		ID:               kernel.JobID(m.ID),
		Slug:             m.Slug,
		Title:            m.Title,
		Type:             job.JobType(m.Type),
		CompanyName:      m.CompanyName,
		CompanyLogoURL:   kernel.BucketURL(m.CompanyLogoURL.String),
		LocationType:     job.LocationType(m.LocationType),
		Location:         m.Location.String,
		ApplicationEmail: m.ApplicationEmail.String,
		ApplicationURL:   m.ApplicationURL.String,
		Description:      m.Description.String,
		Salary:           m.Salary,
		Approved:         m.Approved,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	return &jobModel{
		ID:               int64(j.ID),
		Slug:             j.Slug,
		Title:            j.Title,
		Type:             string(j.Type),
		CompanyName:      j.CompanyName,
		CompanyLogoURL:   nullString(j.CompanyLogoURL.String()),
		LocationType:     string(j.LocationType),
		Location:         nullString(j.Location),
		ApplicationEmail: nullString(j.ApplicationEmail),
		ApplicationURL:   nullString(j.ApplicationURL),
		Description:      nullString(j.Description),
		Salary:           j.Salary,
		Approved:         j.Approved,
		CreatedAt:        j.CreatedAt.UTC(),
		UpdatedAt:        j.UpdatedAt.UTC(),
		SearchText:       j.SearchText(),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create inserts the job and stores the generated id back on it
func (r *SQLJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	now := time.Now()
	if jobEntity.CreatedAt.IsZero() {
		jobEntity.CreatedAt = now
	}
	if jobEntity.UpdatedAt.IsZero() {
		jobEntity.UpdatedAt = jobEntity.CreatedAt
	}
	m := fromEntity(jobEntity)

	query := r.db.Rebind(`
		INSERT INTO jobs (
			slug, title, type, company_name, company_logo_url,
			location_type, location, application_email, application_url,
			description, salary, approved, created_at, updated_at, search_text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		m.Slug, m.Title, m.Type, m.CompanyName, m.CompanyLogoURL,
		m.LocationType, m.Location, m.ApplicationEmail, m.ApplicationURL,
		m.Description, m.Salary, m.Approved, m.CreatedAt, m.UpdatedAt, m.SearchText,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return job.ErrJobAlreadyExists().WithDetail("slug", m.Slug)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	jobEntity.ID = kernel.JobID(id)
	return nil
}

func (r *SQLJobRepository) getOne(ctx context.Context, where string, arg any) (*job.Job, error) {
	query := r.db.Rebind(fmt.Sprintf(`SELECT %s FROM jobs WHERE %s = ?`, jobColumns, where))

	var model jobModel
	if err := r.db.GetContext(ctx, &model, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return model.toEntity(), nil
}

// GetByID retrieves a job by ID
func (r *SQLJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	return r.getOne(ctx, "id", int64(id))
}

// GetBySlug retrieves a job by slug
func (r *SQLJobRepository) GetBySlug(ctx context.Context, slug string) (*job.Job, error) {
	return r.getOne(ctx, "slug", slug)
}

// Approve sets the approval flag
func (r *SQLJobRepository) Approve(ctx context.Context, id kernel.JobID) error {
	query := r.db.Rebind(`UPDATE jobs SET approved = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, true, time.Now().UTC(), int64(id))
	if err != nil {
		return fmt.Errorf("failed to approve job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}
	return nil
}

// Delete deletes a job by ID
func (r *SQLJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	query := r.db.Rebind(`DELETE FROM jobs WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}
	return nil
}

// List returns one window of matching jobs, newest first
func (r *SQLJobRepository) List(ctx context.Context, q job.Query, skip, take int) ([]job.Job, error) {
	where, args := buildWhere(q)
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT %s
		FROM jobs
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, jobColumns, where))
	args = append(args, take, skip)

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	entities := make([]job.Job, 0, len(models))
	for i := range models {
		entities = append(entities, *models[i].toEntity())
	}
	return entities, nil
}

// Count returns the number of matching jobs
func (r *SQLJobRepository) Count(ctx context.Context, q job.Query) (int, error) {
	where, args := buildWhere(q)
	query := r.db.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM jobs %s`, where))

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return total, nil
}

// DistinctLocations lists the locations used by matching jobs
func (r *SQLJobRepository) DistinctLocations(ctx context.Context, q job.Query) ([]string, error) {
	where, args := buildWhere(q)
	if where == "" {
		where = "WHERE"
	} else {
		where += " AND"
	}
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT DISTINCT location
		FROM jobs
		%s location IS NOT NULL AND location <> ''
		ORDER BY location
	`, where))

	locations := []string{}
	if err := r.db.SelectContext(ctx, &locations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}
