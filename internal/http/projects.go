package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// ProjectRequest is the request body for creating or updating a project.
type ProjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.ListProjects()
	if err != nil {
		s.logger.Error("failed to list projects", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list projects")
	}
	if projects == nil {
		projects = []task.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	project, err := s.store.CreateProject(req.Name, req.Color)
	if err != nil {
		s.logger.Error("failed to create project", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create project")
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	project, err := s.store.UpdateProject(c.Param("id"), req.Name, req.Color)
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.store.DeleteProject(c.Param("id")); err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
