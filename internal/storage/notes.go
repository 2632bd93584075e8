package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// CreateNote stores the raw note text a user submitted. Tasks created
// from the note reference it as their source.
func (s *Store) CreateNote(rawText, projectID string) (task.Note, error) {
	n := task.Note{
		ID:        uuid.NewString(),
		RawText:   strings.TrimSpace(rawText),
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}
	if n.RawText == "" {
		return task.Note{}, fmt.Errorf("note text is required")
	}

	_, err := s.db.Exec(`INSERT INTO notes (id, raw_text, project_id, created_at) VALUES (?, ?, ?, ?)`,
		n.ID, n.RawText, nullable(n.ProjectID), n.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return task.Note{}, fmt.Errorf("failed to create note: %w", err)
	}
	return n, nil
}
