package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// TaskFilter narrows ListTasks. Status accepts OPEN, DONE, or ALL
// (empty means OPEN). Search matches title or details, case-insensitive.
type TaskFilter struct {
	Status     string
	ProjectIDs []string
	Search     string
}

// TaskPatch holds a partial task update. Nil fields are untouched.
// ClearDueDate removes the due date; it wins over DueDate.
type TaskPatch struct {
	Title           *string
	Details         *string
	Priority        *int
	EstimateMinutes *int
	DueDate         *time.Time
	ClearDueDate    bool
	Status          *task.Status
	ProjectID       *string
}

const taskColumns = `t.id, t.title, t.details, t.project_id, t.source_note_id,
	t.priority, t.estimate_minutes, t.due_date, t.status, t.created_at, t.updated_at,
	p.id, p.name, p.color`

// CreateTasks persists accepted candidates as OPEN task records. Every
// field is clamped against the bounds table before insert regardless of
// where the candidates came from.
func (s *Store) CreateTasks(candidates []task.Candidate, projectID, sourceNoteID string) ([]task.Task, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	created := make([]task.Task, 0, len(candidates))
	for _, c := range candidates {
		c = c.Clamp()
		t := task.Task{
			ID:              uuid.NewString(),
			Title:           c.Title,
			Details:         c.Details,
			ProjectID:       projectID,
			SourceNoteID:    sourceNoteID,
			Priority:        c.Priority,
			EstimateMinutes: c.EstimateMinutes,
			DueDate:         c.DueDate,
			Status:          task.StatusOpen,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		_, err := tx.Exec(`
			INSERT INTO tasks (id, title, details, project_id, source_note_id,
				priority, estimate_minutes, due_date, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, nullable(t.Details), nullable(t.ProjectID), nullable(t.SourceNoteID),
			t.Priority, t.EstimateMinutes, nullableTime(t.DueDate), string(t.Status),
			t.CreatedAt.Format(time.RFC3339Nano), t.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert task: %w", err)
		}
		created = append(created, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return created, nil
}

// ListTasks returns tasks matching the filter ordered by priority
// descending, due date ascending (absent last), creation time
// descending.
func (s *Store) ListTasks(filter TaskFilter) ([]task.Task, error) {
	var where []string
	var args []any

	status := filter.Status
	if status == "" {
		status = string(task.StatusOpen)
	}
	if status != "ALL" {
		where = append(where, "t.status = ?")
		args = append(args, status)
	}
	if len(filter.ProjectIDs) > 0 {
		placeholders := strings.Repeat("?,", len(filter.ProjectIDs))
		where = append(where, fmt.Sprintf("t.project_id IN (%s)", placeholders[:len(placeholders)-1]))
		for _, id := range filter.ProjectIDs {
			args = append(args, id)
		}
	}
	if filter.Search != "" {
		where = append(where, "(t.title LIKE ? OR t.details LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + taskColumns + `
		FROM tasks t LEFT JOIN projects p ON p.id = t.project_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY t.priority DESC, (t.due_date IS NULL) ASC, t.due_date ASC, t.created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask returns a single task or ErrNotFound.
func (s *Store) GetTask(id string) (task.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+`
		FROM tasks t LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.id = ?`, id)

	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return task.Task{}, ErrNotFound
	}
	return t, err
}

// UpdateTask applies a patch, clamping numeric fields and truncating
// text the same way creation does.
func (s *Store) UpdateTask(id string, patch TaskPatch) (task.Task, error) {
	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, task.TruncateTitle(*patch.Title))
	}
	if patch.Details != nil {
		sets = append(sets, "details = ?")
		args = append(args, nullable(task.TruncateDetails(*patch.Details)))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, task.ClampPriority(*patch.Priority))
	}
	if patch.EstimateMinutes != nil {
		sets = append(sets, "estimate_minutes = ?")
		args = append(args, task.ClampEstimate(*patch.EstimateMinutes))
	}
	if patch.ClearDueDate {
		sets = append(sets, "due_date = NULL")
	} else if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, patch.DueDate.UTC().Format(time.RFC3339Nano))
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.ProjectID != nil {
		sets = append(sets, "project_id = ?")
		args = append(args, nullable(*patch.ProjectID))
	}

	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC().Format(time.RFC3339Nano))
		args = append(args, id)

		res, err := s.db.Exec("UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return task.Task{}, fmt.Errorf("failed to update task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return task.Task{}, err
		}
		if n == 0 {
			return task.Task{}, ErrNotFound
		}
	}

	return s.GetTask(id)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var t task.Task
	var details, projectID, sourceNoteID, dueDate sql.NullString
	var createdAt, updatedAt, status string
	var pID, pName, pColor sql.NullString

	err := row.Scan(&t.ID, &t.Title, &details, &projectID, &sourceNoteID,
		&t.Priority, &t.EstimateMinutes, &dueDate, &status, &createdAt, &updatedAt,
		&pID, &pName, &pColor)
	if err != nil {
		return task.Task{}, err
	}

	t.Details = details.String
	t.ProjectID = projectID.String
	t.SourceNoteID = sourceNoteID.String
	t.Status = task.Status(status)
	if dueDate.Valid {
		if d, err := time.Parse(time.RFC3339Nano, dueDate.String); err == nil {
			t.DueDate = &d
		}
	}
	if c, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		t.CreatedAt = c
	}
	if u, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		t.UpdatedAt = u
	}
	if pID.Valid {
		t.Project = &task.Project{ID: pID.String, Name: pName.String, Color: pColor.String}
	}
	return t, nil
}

// nullable maps the empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}
