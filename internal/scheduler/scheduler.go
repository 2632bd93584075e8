// Package scheduler produces a greedy weekly plan from an open task
// backlog. Packing is deliberately first-fit in priority order, not an
// optimal knapsack: the plan is a readable best-effort schedule, and
// callers depend on the stable, order-preserving behavior.
package scheduler

import (
	"sort"
	"time"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// Safety bounds on the day walk. The calendar cap terminates the scan
// even when the workday mask excludes every weekday.
const (
	workdayHorizon  = 7
	maxCalendarDays = 30
)

// DayPlan is one scheduled day: the tasks assigned to it in order and
// their total estimated minutes, which never exceeds the daily budget.
type DayPlan struct {
	Date         time.Time   `json:"date"`
	DayName      string      `json:"dayName"`
	Tasks        []task.Task `json:"tasks"`
	TotalMinutes int         `json:"totalMinutes"`
}

// Plan assigns tasks to up to 7 workdays starting at now's calendar
// day. Tasks are ordered priority descending, then due date (tasks with
// one sort first, ascending), then creation time descending. Each
// included day takes a single first-fit pass over the remaining
// backlog. Tasks still unassigned after the horizon are left unplanned.
func Plan(tasks []task.Task, dailyMinutes int, workdays [7]bool, now time.Time) []DayPlan {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	remaining := make([]task.Task, len(tasks))
	copy(remaining, tasks)
	sortBacklog(remaining)

	plan := make([]DayPlan, 0, workdayHorizon)
	for offset := 0; offset < maxCalendarDays && len(plan) < workdayHorizon; offset++ {
		date := today.AddDate(0, 0, offset)
		if !workdays[date.Weekday()] {
			continue
		}

		minutesLeft := dailyMinutes
		var dayTasks []task.Task
		var unassigned []task.Task

		// One pass per day: assign every task that still fits, front to
		// back. Removed tasks are not re-scanned within the same day.
		for _, t := range remaining {
			est := t.EstimateMinutes
			if est == 0 {
				est = task.DefaultEstimateMinutes
			}
			if est <= minutesLeft {
				dayTasks = append(dayTasks, t)
				minutesLeft -= est
			} else {
				unassigned = append(unassigned, t)
			}
		}
		remaining = unassigned

		plan = append(plan, DayPlan{
			Date:         date,
			DayName:      date.Weekday().String(),
			Tasks:        dayTasks,
			TotalMinutes: dailyMinutes - minutesLeft,
		})
	}

	return plan
}

// sortBacklog orders tasks by priority descending, due date presence
// then ascending, and creation time descending. The sort is stable so
// ties beyond these keys keep their input order.
func sortBacklog(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			return a.DueDate.Before(*b.DueDate)
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
