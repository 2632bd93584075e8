package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// CreateProject creates a project. Name is required; color is optional.
func (s *Store) CreateProject(name, color string) (task.Project, error) {
	p := task.Project{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if p.Name == "" {
		return task.Project{}, fmt.Errorf("project name is required")
	}

	_, err := s.db.Exec(`INSERT INTO projects (id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, nullable(p.Color), p.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return task.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects newest first, each with its open
// task count.
func (s *Store) ListProjects() ([]task.Project, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.color, p.created_at,
		       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id AND t.status = ?) AS task_count
		FROM projects p
		ORDER BY p.created_at DESC`, string(task.StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []task.Project
	for rows.Next() {
		var p task.Project
		var color sql.NullString
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &color, &createdAt, &p.TaskCount); err != nil {
			return nil, err
		}
		p.Color = color.String
		if c, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			p.CreatedAt = c
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject renames or recolors a project. Empty name leaves the
// name unchanged.
func (s *Store) UpdateProject(id, name, color string) (task.Project, error) {
	var sets []string
	var args []any

	if name = strings.TrimSpace(name); name != "" {
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if color != "" {
		sets = append(sets, "color = ?")
		args = append(args, color)
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.Exec("UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return task.Project{}, fmt.Errorf("failed to update project: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return task.Project{}, ErrNotFound
		}
	}

	row := s.db.QueryRow(`SELECT id, name, color, created_at FROM projects WHERE id = ?`, id)
	var p task.Project
	var color2 sql.NullString
	var createdAt string
	if err := row.Scan(&p.ID, &p.Name, &color2, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return task.Project{}, ErrNotFound
		}
		return task.Project{}, err
	}
	p.Color = color2.String
	if c, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		p.CreatedAt = c
	}
	return p, nil
}

// DeleteProject removes a project. Tasks and notes referencing it keep
// living with their project reference cleared.
func (s *Store) DeleteProject(id string) error {
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
