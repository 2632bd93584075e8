package extraction

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// rawCandidate mirrors the JSON shape providers are instructed to emit.
// Fields are json.RawMessage-free but loosely typed so one malformed
// field never sinks the whole payload.
type rawCandidate struct {
	Title           any `json:"title"`
	Details         any `json:"details"`
	Priority        any `json:"priority"`
	EstimateMinutes any `json:"estimateMinutes"`
	DueDate         any `json:"dueDate"`
}

// ParseResponse decodes a provider's raw text into clamped candidates.
// It never fails: markdown fences are stripped, the first bracketed
// array is located, and each field is coerced defensively. An
// unrecoverable payload yields an empty slice, which the orchestrator
// treats as a failure signal.
func ParseResponse(raw string) []task.Candidate {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var items []rawCandidate
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &items); err != nil {
		return nil
	}

	if len(items) > task.MaxCandidates {
		items = items[:task.MaxCandidates]
	}

	out := make([]task.Candidate, 0, len(items))
	for _, item := range items {
		out = append(out, coerce(item))
	}
	return out
}

// coerce maps one loosely-typed element onto the bounds table. The same
// coercion applies regardless of which provider produced the payload.
func coerce(item rawCandidate) task.Candidate {
	c := task.Candidate{
		Title:           "Untitled task",
		Priority:        task.DefaultPriority,
		EstimateMinutes: task.DefaultEstimateMinutes,
	}

	if s, ok := item.Title.(string); ok && s != "" {
		c.Title = task.TruncateTitle(s)
	}
	if s, ok := item.Details.(string); ok {
		c.Details = task.TruncateDetails(s)
	}
	if n, ok := item.Priority.(float64); ok {
		c.Priority = clamp(int(math.Round(n)), task.MinPriority, task.MaxPriority)
	}
	if n, ok := item.EstimateMinutes.(float64); ok {
		c.EstimateMinutes = clamp(int(math.Round(n)), task.MinEstimateMinutes, task.MaxEstimateMinutes)
	}
	if s, ok := item.DueDate.(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			c.DueDate = &t
		}
	}
	return c
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// stripFences removes markdown code-fence markers models sometimes wrap
// around JSON output.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
