package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/scheduler"
	"github.com/fyrsmithlabs/taskweave/internal/storage"
	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// PlanResponse is the response body for GET /api/v1/plan.
type PlanResponse struct {
	Days           []scheduler.DayPlan `json:"days"`
	DailyMinutes   int                 `json:"dailyMinutes"`
	OpenTasks      int                 `json:"openTasks"`
	UnplannedTasks int                 `json:"unplannedTasks"`
}

// handlePlan schedules the open task backlog across the coming week.
// Stored settings supply the daily budget and workday mask; the
// dailyMinutes and workdays query parameters override them for a
// single request (workdays as seven 0/1 characters, Sunday first,
// e.g. 0111110).
func (s *Server) handlePlan(c echo.Context) error {
	settings, err := s.store.GetSettings()
	if err != nil {
		s.logger.Error("failed to load settings", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load settings")
	}

	if v := c.QueryParam("dailyMinutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dailyMinutes must be an integer")
		}
		settings.DailyMinutes = minutes
		settings = settings.Clamp()
	}
	if v := c.QueryParam("workdays"); v != "" {
		mask, err := parseWorkdayMask(v)
		if err != nil {
			return err
		}
		settings.Workdays = mask
	}

	tasks, err := s.store.ListTasks(storage.TaskFilter{Status: string(task.StatusOpen)})
	if err != nil {
		s.logger.Error("failed to list open tasks", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	days := scheduler.Plan(tasks, settings.DailyMinutes, settings.Workdays, time.Now())

	planned := 0
	for _, d := range days {
		planned += len(d.Tasks)
	}

	return c.JSON(http.StatusOK, PlanResponse{
		Days:           days,
		DailyMinutes:   settings.DailyMinutes,
		OpenTasks:      len(tasks),
		UnplannedTasks: len(tasks) - planned,
	})
}

func parseWorkdayMask(v string) ([7]bool, error) {
	var mask [7]bool
	if len(v) != 7 {
		return mask, echo.NewHTTPError(http.StatusBadRequest, "workdays must be seven 0/1 characters")
	}
	for i, r := range v {
		switch r {
		case '1':
			mask[i] = true
		case '0':
		default:
			return mask, echo.NewHTTPError(http.StatusBadRequest, "workdays must be seven 0/1 characters")
		}
	}
	return mask, nil
}
