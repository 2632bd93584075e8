package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// GetSettings returns the stored planner settings, or defaults when
// none have been saved yet.
func (s *Store) GetSettings() (task.Settings, error) {
	row := s.db.QueryRow(`SELECT mock_ai, daily_minutes, workdays FROM settings WHERE id = 1`)

	var settings task.Settings
	var workdaysJSON string
	err := row.Scan(&settings.MockAI, &settings.DailyMinutes, &workdaysJSON)
	if err == sql.ErrNoRows {
		return task.DefaultSettings(), nil
	}
	if err != nil {
		return task.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := json.Unmarshal([]byte(workdaysJSON), &settings.Workdays); err != nil {
		settings.Workdays = task.DefaultSettings().Workdays
	}
	return settings.Clamp(), nil
}

// SaveSettings persists planner settings, clamping the daily budget.
func (s *Store) SaveSettings(settings task.Settings) error {
	settings = settings.Clamp()

	workdaysJSON, err := json.Marshal(settings.Workdays)
	if err != nil {
		return fmt.Errorf("failed to marshal workday mask: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO settings (id, mock_ai, daily_minutes, workdays) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET mock_ai = excluded.mock_ai,
			daily_minutes = excluded.daily_minutes, workdays = excluded.workdays`,
		settings.MockAI, settings.DailyMinutes, string(workdaysJSON))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
