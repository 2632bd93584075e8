package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// monday is the fixed reference clock for plan tests.
var monday = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

var weekdaysOnly = [7]bool{false, true, true, true, true, true, false}

func openTask(id string, priority, estimate int) task.Task {
	return task.Task{
		ID:              id,
		Title:           id,
		Priority:        priority,
		EstimateMinutes: estimate,
		Status:          task.StatusOpen,
		CreatedAt:       monday.Add(-24 * time.Hour),
	}
}

func TestPlan_FirstFitPacking(t *testing.T) {
	tasks := []task.Task{
		openTask("deep-work", 5, 45),
		openTask("errand", 4, 30),
		openTask("email", 3, 10),
	}

	days := Plan(tasks, 60, weekdaysOnly, monday)
	require.NotEmpty(t, days)

	// Day one takes the 45 in priority order, skips the 30 that no
	// longer fits, and backfills the 10.
	day1 := days[0]
	require.Len(t, day1.Tasks, 2)
	assert.Equal(t, "deep-work", day1.Tasks[0].ID)
	assert.Equal(t, "email", day1.Tasks[1].ID)
	assert.Equal(t, 55, day1.TotalMinutes)

	day2 := days[1]
	require.Len(t, day2.Tasks, 1)
	assert.Equal(t, "errand", day2.Tasks[0].ID)
	assert.Equal(t, 30, day2.TotalMinutes)
}

func TestPlan_SkipsNonWorkdays(t *testing.T) {
	days := Plan(nil, 120, weekdaysOnly, monday)
	require.Len(t, days, 7)

	// Monday through Friday, then the next Monday and Tuesday.
	wantDates := []int{2, 3, 4, 5, 6, 9, 10}
	for i, d := range days {
		assert.Equal(t, wantDates[i], d.Date.Day(), "day %d", i)
		assert.NotEqual(t, time.Saturday, d.Date.Weekday())
		assert.NotEqual(t, time.Sunday, d.Date.Weekday())
		assert.Equal(t, d.Date.Weekday().String(), d.DayName)
	}
}

func TestPlan_EmptyWorkdayMask(t *testing.T) {
	tasks := []task.Task{openTask("a", 3, 30)}

	days := Plan(tasks, 120, [7]bool{}, monday)

	// The calendar cap terminates the walk without ever including a day.
	assert.Empty(t, days)
}

func TestPlan_BudgetNeverExceeded(t *testing.T) {
	tasks := []task.Task{
		openTask("a", 5, 50),
		openTask("b", 5, 50),
		openTask("c", 4, 50),
		openTask("d", 3, 25),
		openTask("e", 2, 120),
		openTask("f", 1, 5),
	}

	days := Plan(tasks, 90, weekdaysOnly, monday)
	for _, d := range days {
		total := 0
		for _, tk := range d.Tasks {
			total += tk.EstimateMinutes
		}
		assert.LessOrEqual(t, total, 90, "day %s over budget", d.DayName)
		assert.Equal(t, total, d.TotalMinutes)
	}
}

func TestPlan_NoTaskScheduledTwice(t *testing.T) {
	tasks := []task.Task{
		openTask("a", 5, 30),
		openTask("b", 4, 30),
		openTask("c", 3, 30),
		openTask("d", 2, 30),
	}

	days := Plan(tasks, 60, weekdaysOnly, monday)

	seen := map[string]int{}
	for _, d := range days {
		for _, tk := range d.Tasks {
			seen[tk.ID]++
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s scheduled %d times", id, n)
	}
	assert.Len(t, seen, 4)
}

func TestPlan_OversizedTaskLeftUnplanned(t *testing.T) {
	tasks := []task.Task{
		openTask("whale", 5, 480),
		openTask("minnow", 3, 20),
	}

	days := Plan(tasks, 60, weekdaysOnly, monday)

	for _, d := range days {
		for _, tk := range d.Tasks {
			assert.NotEqual(t, "whale", tk.ID)
		}
	}
	require.NotEmpty(t, days)
	require.Len(t, days[0].Tasks, 1)
	assert.Equal(t, "minnow", days[0].Tasks[0].ID)
}

func TestPlan_ZeroEstimateUsesDefault(t *testing.T) {
	tasks := []task.Task{openTask("unsized", 3, 0)}

	days := Plan(tasks, 120, weekdaysOnly, monday)
	require.NotEmpty(t, days)
	require.Len(t, days[0].Tasks, 1)
	assert.Equal(t, task.DefaultEstimateMinutes, days[0].TotalMinutes)
}

func TestSortBacklog(t *testing.T) {
	due1 := monday.AddDate(0, 0, 1)
	due2 := monday.AddDate(0, 0, 3)

	early := openTask("early-due", 4, 30)
	early.DueDate = &due1
	late := openTask("late-due", 4, 30)
	late.DueDate = &due2
	noDue := openTask("no-due", 4, 30)
	top := openTask("top-priority", 5, 30)
	old := openTask("older", 4, 30)
	old.CreatedAt = monday.Add(-72 * time.Hour)

	tasks := []task.Task{noDue, late, old, early, top}
	sortBacklog(tasks)

	want := []string{"top-priority", "early-due", "late-due", "no-due", "older"}
	for i, id := range want {
		assert.Equal(t, id, tasks[i].ID, "position %d", i)
	}
}
