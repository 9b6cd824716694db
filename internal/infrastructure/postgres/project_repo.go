package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectColumns = `id, user_id, title, description, tech_stack, status, created_at, updated_at`

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	query := `
		INSERT INTO projects (user_id, title, description, tech_stack, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + projectColumns

	row := r.pool.QueryRow(ctx, query, p.UserID, p.Title, p.Description, p.TechStack, p.Status)

	created, err := scanProject(row)
	if err != nil {
		switch pgErrCode(err) {
		case codeForeignKeyViolation, codeInvalidTextRep:
			return nil, domain.ErrOwnerMissing
		}
		return nil, err
	}
	return created, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if pgErrCode(err) == codeInvalidTextRep {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	query := `
		UPDATE projects
		SET    title       = $3,
		       description = $4,
		       tech_stack  = $5,
		       status      = $6,
		       updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + projectColumns

	row := r.pool.QueryRow(ctx, query, p.ID, p.UserID, p.Title, p.Description, p.TechStack, p.Status)
	return scanProject(row)
}

func (r *ProjectRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan project count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.TechStack, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}
