package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/domain"
)

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// EnsureSchema creates the projects table if it does not exist yet.
// Called once at startup.
func (r *ProjectRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS projects (
	project_id  TEXT PRIMARY KEY,
	client_name TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'On Track',
	steps_json  JSONB NOT NULL DEFAULT '[]',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Get returns the project with the given id, or domain.ErrNotFound.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
SELECT project_id, client_name, status, steps_json, updated_at
FROM projects
WHERE project_id = $1
LIMIT 1;
`
	var p domain.Project
	var stepsJSON []byte
	err := r.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.ClientName, &p.Status, &stepsJSON, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	if len(stepsJSON) > 0 {
		if err := json.Unmarshal(stepsJSON, &p.Steps); err != nil {
			return nil, fmt.Errorf("decode steps for %s: %w", id, err)
		}
	}
	return &p, nil
}

// Insert stores a new project. It fails with domain.ErrDuplicateID when the
// id is already taken, which the service treats as a retryable allocation
// conflict.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) error {
	stepsJSON, err := json.Marshal(p.Steps)
	if err != nil {
		return fmt.Errorf("encode steps: %w", err)
	}

	const q = `
INSERT INTO projects (project_id, client_name, status, steps_json, updated_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING updated_at;
`
	err = r.db.QueryRow(ctx, q, p.ID, p.ClientName, p.Status, stepsJSON).
		Scan(&p.UpdatedAt)
	if err != nil {
		// unique violation on project_id
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert project %s: %w", p.ID, err)
	}
	return nil
}

// Upsert inserts the project or fully replaces client_name, status and steps
// on the existing row. Field-level merging happens before this point; the
// repository never does partial updates.
func (r *ProjectRepository) Upsert(ctx context.Context, p *domain.Project) error {
	stepsJSON, err := json.Marshal(p.Steps)
	if err != nil {
		return fmt.Errorf("encode steps: %w", err)
	}

	const q = `
INSERT INTO projects (project_id, client_name, status, steps_json, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (project_id)
DO UPDATE SET
	client_name = EXCLUDED.client_name,
	status      = EXCLUDED.status,
	steps_json  = EXCLUDED.steps_json,
	updated_at  = NOW()
RETURNING updated_at;
`
	err = r.db.QueryRow(ctx, q, p.ID, p.ClientName, p.Status, stepsJSON).
		Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert project %s: %w", p.ID, err)
	}
	return nil
}

// MaxSequenceForYear returns the highest allocated sequence number among ids
// of the form HC-<year>-<seq>, or 0 when none exist. The read is not atomic
// with the subsequent insert; the caller relies on Insert's uniqueness check.
func (r *ProjectRepository) MaxSequenceForYear(ctx context.Context, year int) (int, error) {
	// "HC-<year>-" is 9 characters for a four-digit year.
	const q = `
SELECT COALESCE(MAX(substring(project_id FROM 9)::int), 0)
FROM projects
WHERE project_id ~ $1;
`
	var maxSeq int
	err := r.db.QueryRow(ctx, q, domain.SequencePattern(year)).Scan(&maxSeq)
	if err != nil {
		return 0, fmt.Errorf("max sequence for %d: %w", year, err)
	}
	return maxSeq, nil
}

// CountByStatus returns how many projects carry each status label.
func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	const q = `
SELECT status, COUNT(*)
FROM projects
GROUP BY status;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
