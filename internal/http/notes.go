package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateNoteRequest is the request body for POST /api/v1/notes.
type CreateNoteRequest struct {
	RawText   string `json:"rawText"`
	ProjectID string `json:"projectId,omitempty"`
}

func (s *Server) handleCreateNote(c echo.Context) error {
	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.RawText) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "rawText is required")
	}

	note, err := s.store.CreateNote(req.RawText, req.ProjectID)
	if err != nil {
		s.logger.Error("failed to create note", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create note")
	}
	return c.JSON(http.StatusCreated, note)
}
