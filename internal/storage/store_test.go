package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "taskweave.db"))
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CreateTasks_ClampsFields(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTasks([]task.Candidate{
		{Title: strings.Repeat("t", 400), Priority: 99, EstimateMinutes: 100000},
		{Title: "Defaults", Priority: 0, EstimateMinutes: 0},
	}, "", "")
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Len(t, created[0].Title, task.MaxTitleLen)
	assert.Equal(t, task.MaxPriority, created[0].Priority)
	assert.Equal(t, task.MaxEstimateMinutes, created[0].EstimateMinutes)
	assert.Equal(t, task.StatusOpen, created[0].Status)

	assert.Equal(t, task.DefaultPriority, created[1].Priority)
	assert.Equal(t, task.DefaultEstimateMinutes, created[1].EstimateMinutes)

	// Round-trip through the database, not just the returned structs.
	stored, err := s.GetTask(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, task.MaxPriority, stored.Priority)
}

func TestStore_ListTasks_Filters(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProject("Home", "")
	require.NoError(t, err)

	created, err := s.CreateTasks([]task.Candidate{
		{Title: "Fix the gate", Priority: 4, EstimateMinutes: 30},
		{Title: "Paint the fence", Details: "buy primer first", Priority: 2, EstimateMinutes: 60},
	}, p.ID, "")
	require.NoError(t, err)

	_, err = s.CreateTasks([]task.Candidate{
		{Title: "Unrelated errand", Priority: 3, EstimateMinutes: 15},
	}, "", "")
	require.NoError(t, err)

	_, err = s.UpdateTask(created[1].ID, TaskPatch{Status: statusPtr(task.StatusDone)})
	require.NoError(t, err)

	// Default filter is OPEN only.
	open, err := s.ListTasks(TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	all, err := s.ListTasks(TaskFilter{Status: "ALL"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	done, err := s.ListTasks(TaskFilter{Status: string(task.StatusDone)})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Paint the fence", done[0].Title)

	byProject, err := s.ListTasks(TaskFilter{Status: "ALL", ProjectIDs: []string{p.ID}})
	require.NoError(t, err)
	assert.Len(t, byProject, 2)
	require.NotNil(t, byProject[0].Project)
	assert.Equal(t, "Home", byProject[0].Project.Name)

	bySearch, err := s.ListTasks(TaskFilter{Status: "ALL", Search: "primer"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Paint the fence", bySearch[0].Title)
}

func TestStore_ListTasks_Ordering(t *testing.T) {
	s := newTestStore(t)

	due := time.Date(2026, time.March, 6, 23, 59, 0, 0, time.UTC)
	laterDue := due.AddDate(0, 0, 3)

	_, err := s.CreateTasks([]task.Candidate{
		{Title: "low", Priority: 2, EstimateMinutes: 30},
		{Title: "high-late", Priority: 5, EstimateMinutes: 30, DueDate: &laterDue},
		{Title: "high-early", Priority: 5, EstimateMinutes: 30, DueDate: &due},
		{Title: "high-nodate", Priority: 5, EstimateMinutes: 30},
	}, "", "")
	require.NoError(t, err)

	tasks, err := s.ListTasks(TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	assert.Equal(t, "high-early", tasks[0].Title)
	assert.Equal(t, "high-late", tasks[1].Title)
	assert.Equal(t, "high-nodate", tasks[2].Title)
	assert.Equal(t, "low", tasks[3].Title)
}

func TestStore_UpdateTask(t *testing.T) {
	s := newTestStore(t)

	due := time.Date(2026, time.March, 6, 23, 59, 0, 0, time.UTC)
	created, err := s.CreateTasks([]task.Candidate{
		{Title: "Original", Priority: 3, EstimateMinutes: 30, DueDate: &due},
	}, "", "")
	require.NoError(t, err)
	id := created[0].ID

	title := "Renamed"
	priority := 77
	updated, err := s.UpdateTask(id, TaskPatch{Title: &title, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, task.MaxPriority, updated.Priority)
	require.NotNil(t, updated.DueDate)

	updated, err = s.UpdateTask(id, TaskPatch{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	updated, err = s.UpdateTask(id, TaskPatch{Status: statusPtr(task.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)

	// Empty patch is a no-op read.
	same, err := s.UpdateTask(id, TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated.Title, same.Title)

	_, err = s.UpdateTask("missing", TaskPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteTask(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateTasks([]task.Candidate{{Title: "Doomed", Priority: 3, EstimateMinutes: 30}}, "", "")
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(created[0].ID))

	_, err = s.GetTask(created[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteTask(created[0].ID), ErrNotFound)
}

func TestStore_Projects(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateProject("   ", "")
	require.Error(t, err)

	p, err := s.CreateProject("  Home  ", "#ff8800")
	require.NoError(t, err)
	assert.Equal(t, "Home", p.Name)

	_, err = s.CreateTasks([]task.Candidate{
		{Title: "Fix the gate", Priority: 3, EstimateMinutes: 30},
	}, p.ID, "")
	require.NoError(t, err)

	projects, err := s.ListProjects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 1, projects[0].TaskCount)

	renamed, err := s.UpdateProject(p.ID, "House", "")
	require.NoError(t, err)
	assert.Equal(t, "House", renamed.Name)
	assert.Equal(t, "#ff8800", renamed.Color)

	_, err = s.UpdateProject("missing", "Nope", "")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a project orphans its tasks instead of removing them.
	tasks, err := s.ListTasks(TaskFilter{ProjectIDs: []string{p.ID}})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.NoError(t, s.DeleteProject(p.ID))

	orphan, err := s.GetTask(tasks[0].ID)
	require.NoError(t, err)
	assert.Empty(t, orphan.ProjectID)
	assert.Nil(t, orphan.Project)
}

func TestStore_Notes(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateNote("   ", "")
	require.Error(t, err)

	n, err := s.CreateNote("  call dentist tomorrow  ", "")
	require.NoError(t, err)
	assert.Equal(t, "call dentist tomorrow", n.RawText)
	assert.NotEmpty(t, n.ID)
}

func TestStore_Settings(t *testing.T) {
	s := newTestStore(t)

	// Nothing saved yet: defaults.
	got, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, task.DefaultSettings(), got)

	saved := task.Settings{
		MockAI:       true,
		DailyMinutes: 100000, // clamped on save
		Workdays:     [7]bool{true, false, true, false, true, false, true},
	}
	require.NoError(t, s.SaveSettings(saved))

	got, err = s.GetSettings()
	require.NoError(t, err)
	assert.True(t, got.MockAI)
	assert.Equal(t, task.MaxDailyMinutes, got.DailyMinutes)
	assert.Equal(t, saved.Workdays, got.Workdays)

	// Saving again overwrites the single row.
	saved.MockAI = false
	saved.DailyMinutes = 90
	require.NoError(t, s.SaveSettings(saved))

	got, err = s.GetSettings()
	require.NoError(t, err)
	assert.False(t, got.MockAI)
	assert.Equal(t, 90, got.DailyMinutes)
}

func statusPtr(s task.Status) *task.Status {
	return &s
}
