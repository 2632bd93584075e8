package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

func (s *Server) handleGetSettings(c echo.Context) error {
	settings, err := s.store.GetSettings()
	if err != nil {
		s.logger.Error("failed to load settings", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(c echo.Context) error {
	var settings task.Settings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := s.store.SaveSettings(settings); err != nil {
		s.logger.Error("failed to save settings", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save settings")
	}

	saved, err := s.store.GetSettings()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(http.StatusOK, saved)
}
