package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/google/uuid"
)

type ProjectRepository struct {
	db *sql.DB
}

const projectColumns = `id, user_id, title, description, tech_stack, status, created_at, updated_at`

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	now := toMillis(time.Now())
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO projects (id, user_id, title, description, tech_stack, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+projectColumns,
		uuid.NewString(), p.UserID, p.Title, p.Description, p.TechStack, p.Status, now, now,
	)

	created, err := scanProject(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrOwnerMissing
		}
		return nil, err
	}
	return created, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Project, error) {
	// rowid breaks ties between rows created in the same millisecond.
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
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
	row := r.db.QueryRowContext(ctx, `
		UPDATE projects
		SET    title = ?, description = ?, tech_stack = ?, status = ?, updated_at = ?
		WHERE  id = ? AND user_id = ?
		RETURNING `+projectColumns,
		p.Title, p.Description, p.TechStack, p.Status, toMillis(time.Now()), p.ID, p.UserID,
	)
	return scanProject(row)
}

func (r *ProjectRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
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

// *sql.Row and *sql.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p                    domain.Project
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.TechStack, &p.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}
