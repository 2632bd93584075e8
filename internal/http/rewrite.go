package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// mockHeader forces the rule-based splitter for a single request,
// used for deterministic testing against the live API.
const mockHeader = "X-Mock-AI"

// RewriteRequest is the request body for POST /api/v1/rewrite.
type RewriteRequest struct {
	Text        string `json:"text"`
	ProjectName string `json:"projectName,omitempty"`
}

// RewriteResponse is the response body for POST /api/v1/rewrite.
type RewriteResponse struct {
	Tasks    []task.Candidate `json:"tasks"`
	Provider string           `json:"provider"`
}

// handleRewrite extracts task candidates from note text. Validation
// happens here, before the orchestrator runs; the orchestrator itself
// never fails. Candidates are re-clamped at this boundary even though
// every backend already clamps, so the two layers cannot drift apart.
func (s *Server) handleRewrite(c echo.Context) error {
	var req RewriteRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid rewrite request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	forceMock := c.Request().Header.Get(mockHeader) == "true"

	candidates, provider := s.extractor.Extract(c.Request().Context(), req.Text, req.ProjectName, forceMock)
	for i := range candidates {
		candidates[i] = candidates[i].Clamp()
	}

	return c.JSON(http.StatusOK, RewriteResponse{
		Tasks:    candidates,
		Provider: string(provider),
	})
}

// handleRewriteStatus reports the provider selection and which
// credentials are configured. Booleans only, never key material.
func (s *Server) handleRewriteStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.extractor.Status())
}
