package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ore/internal/core"
)

func (r *SQLiteRepository) CreateProject(ctx context.Context, p core.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, user_id, name, color) VALUES (?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Color)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, p core.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, color = ? WHERE id = ? AND user_id = ?`,
		p.Name, p.Color, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return requireRow(res, "update project")
}

// DeleteProject removes a project that has no entries left. Entries
// hold a non-owning reference, so deletion is refused while any exist.
func (r *SQLiteRepository) DeleteProject(ctx context.Context, userID, id string) error {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM time_entries WHERE project_id = ? AND user_id = ?`, id, userID).Scan(&n)
	if err != nil {
		return fmt.Errorf("count project entries: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%d entries: %w", n, core.ErrProjectInUse)
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireRow(res, "delete project")
}

func (r *SQLiteRepository) GetProject(ctx context.Context, userID, id string) (core.Project, error) {
	var p core.Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, color FROM projects WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Project{}, core.ErrNotFound
		}
		return core.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListProjects(ctx context.Context, userID string) ([]core.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, color FROM projects WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []core.Project
	for rows.Next() {
		var p core.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
