// Package task defines the shared task domain types and the field
// bounds applied to every candidate regardless of which backend
// produced it.
package task

import "time"

// Status of a persisted task.
type Status string

const (
	StatusOpen Status = "OPEN"
	StatusDone Status = "DONE"
)

// Field bounds. Normalization and the HTTP boundary both clamp against
// this table so extreme provider output can never reach storage.
const (
	MaxTitleLen   = 200
	MaxDetailsLen = 500

	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3

	MinEstimateMinutes     = 5
	MaxEstimateMinutes     = 480
	DefaultEstimateMinutes = 30

	MaxCandidates = 6
)

// Settings bounds for the weekly plan.
const (
	MinDailyMinutes     = 15
	MaxDailyMinutes     = 720
	DefaultDailyMinutes = 120
)

// Candidate is a proposed task produced by extraction. It is transient:
// the caller reviews candidates and persists the accepted ones as Tasks.
type Candidate struct {
	Title           string     `json:"title"`
	Details         string     `json:"details,omitempty"`
	Priority        int        `json:"priority"`
	EstimateMinutes int        `json:"estimateMinutes"`
	DueDate         *time.Time `json:"dueDate"`
}

// Clamp constrains every field of the candidate to the bounds table.
func (c Candidate) Clamp() Candidate {
	c.Title = TruncateTitle(c.Title)
	c.Details = TruncateDetails(c.Details)
	c.Priority = ClampPriority(c.Priority)
	c.EstimateMinutes = ClampEstimate(c.EstimateMinutes)
	return c
}

// Task is a persisted task record.
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Details         string     `json:"details,omitempty"`
	ProjectID       string     `json:"projectId,omitempty"`
	SourceNoteID    string     `json:"sourceNoteId,omitempty"`
	Priority        int        `json:"priority"`
	EstimateMinutes int        `json:"estimateMinutes"`
	DueDate         *time.Time `json:"dueDate"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Project         *Project   `json:"project,omitempty"`
}

// Project groups tasks.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	TaskCount int       `json:"taskCount"`
}

// Note is the raw text a user typed before extraction.
type Note struct {
	ID        string    `json:"id"`
	RawText   string    `json:"rawText"`
	ProjectID string    `json:"projectId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings is per-deployment planner configuration. Workdays is indexed
// Sunday=0 through Saturday=6.
type Settings struct {
	MockAI       bool    `json:"mockAi"`
	DailyMinutes int     `json:"dailyMinutes"`
	Workdays     [7]bool `json:"workdays"`
}

// DefaultSettings returns the out-of-the-box planner settings:
// 120 minutes per day, Monday through Friday.
func DefaultSettings() Settings {
	return Settings{
		MockAI:       false,
		DailyMinutes: DefaultDailyMinutes,
		Workdays:     [7]bool{false, true, true, true, true, true, false},
	}
}

// Clamp constrains settings to their valid ranges.
func (s Settings) Clamp() Settings {
	s.DailyMinutes = clampInt(s.DailyMinutes, MinDailyMinutes, MaxDailyMinutes, DefaultDailyMinutes)
	return s
}

// ClampPriority clamps a priority to [MinPriority, MaxPriority],
// substituting the default when the value is zero.
func ClampPriority(p int) int {
	return clampInt(p, MinPriority, MaxPriority, DefaultPriority)
}

// ClampEstimate clamps an estimate to [MinEstimateMinutes,
// MaxEstimateMinutes], substituting the default when the value is zero.
func ClampEstimate(m int) int {
	return clampInt(m, MinEstimateMinutes, MaxEstimateMinutes, DefaultEstimateMinutes)
}

// TruncateTitle limits a title to MaxTitleLen characters.
func TruncateTitle(s string) string {
	return truncate(s, MaxTitleLen)
}

// TruncateDetails limits details to MaxDetailsLen characters.
func TruncateDetails(s string) string {
	return truncate(s, MaxDetailsLen)
}

func clampInt(v, min, max, def int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
