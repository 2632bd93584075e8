package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/storage"
	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// handleListTasks returns tasks filtered by status, project, and a
// text search over title and details.
func (s *Server) handleListTasks(c echo.Context) error {
	filter := storage.TaskFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}
	if ids := c.QueryParam("projectIds"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id != "" {
				filter.ProjectIDs = append(filter.ProjectIDs, id)
			}
		}
	}

	tasks, err := s.store.ListTasks(filter)
	if err != nil {
		s.logger.Error("failed to list tasks", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTasksRequest is the request body for POST /api/v1/tasks:
// reviewed candidates to persist, optionally tied to a project and the
// note they came from.
type CreateTasksRequest struct {
	Tasks        []task.Candidate `json:"tasks"`
	ProjectID    string           `json:"projectId,omitempty"`
	SourceNoteID string           `json:"sourceNoteId,omitempty"`
}

// CreateTasksResponse is the response body for POST /api/v1/tasks.
type CreateTasksResponse struct {
	Count int         `json:"count"`
	Tasks []task.Task `json:"tasks"`
}

func (s *Server) handleCreateTasks(c echo.Context) error {
	var req CreateTasksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Tasks) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "tasks array is required")
	}

	created, err := s.store.CreateTasks(req.Tasks, req.ProjectID, req.SourceNoteID)
	if err != nil {
		s.logger.Error("failed to create tasks", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create tasks")
	}

	return c.JSON(http.StatusCreated, CreateTasksResponse{Count: len(created), Tasks: created})
}

// UpdateTaskRequest is the request body for PATCH /api/v1/tasks/:id.
// Absent fields are untouched. DueDate is raw JSON so an explicit null
// (clear the date) is distinguishable from an absent field.
type UpdateTaskRequest struct {
	Title           *string         `json:"title"`
	Details         *string         `json:"details"`
	Priority        *int            `json:"priority"`
	EstimateMinutes *int            `json:"estimateMinutes"`
	DueDate         json.RawMessage `json:"dueDate"`
	Status          *string         `json:"status"`
	ProjectID       *string         `json:"projectId"`
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := storage.TaskPatch{
		Title:           req.Title,
		Details:         req.Details,
		Priority:        req.Priority,
		EstimateMinutes: req.EstimateMinutes,
	}

	if req.Status != nil {
		status := task.Status(*req.Status)
		if status != task.StatusOpen && status != task.StatusDone {
			return echo.NewHTTPError(http.StatusBadRequest, "status must be OPEN or DONE")
		}
		patch.Status = &status
	}
	if req.ProjectID != nil {
		patch.ProjectID = req.ProjectID
	}
	if len(req.DueDate) > 0 {
		if string(req.DueDate) == "null" {
			patch.ClearDueDate = true
		} else {
			var raw string
			if err := json.Unmarshal(req.DueDate, &raw); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "dueDate must be a string or null")
			}
			due, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "dueDate must be RFC 3339")
			}
			patch.DueDate = &due
		}
	}

	updated, err := s.store.UpdateTask(c.Param("id"), patch)
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if err := s.store.DeleteTask(c.Param("id")); err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
