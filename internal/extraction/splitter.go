package extraction

import (
	"regexp"
	"strings"
	"time"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// Splitter is the deterministic rule-based backend. It segments a note
// on sentence punctuation and conjunction phrases, then derives title,
// priority, estimate, and due date per fragment with lexical heuristics.
// It never fails and never makes a network call.
type Splitter struct{}

// NewSplitter creates a rule-based splitter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// fragmentPattern segments on sentence-ending punctuation, newlines,
// commas, and coordinating conjunction phrases ("also", "and then",
// ", and"). The conjunction alternatives come before the bare comma so
// ", and finish x" consumes the "and" instead of leaving it in the
// fragment.
var fragmentPattern = regexp.MustCompile(`[.;\n]+|(?:,?\s+(?:also|and also|and then)\s+)|(?:,\s+and\s+)|,\s*`)

// fillerPrefix strips leading intent phrases so titles start at the verb.
var fillerPrefix = regexp.MustCompile(`(?i)^(i\s+)?(need\s+to|have\s+to|should|must|gotta|gonna|want\s+to|got\s+to)\s+`)

// verbStarters are action verbs a fragment may already begin with.
var verbStarters = []string{
	"call", "send", "email", "write", "review", "check", "buy",
	"schedule", "plan", "prepare", "create", "fix", "update",
	"organize", "clean", "book", "cancel", "confirm", "meet",
	"read", "research", "discuss", "finish", "complete", "submit",
	"set up", "follow up", "reach out", "look into",
}

// urgencyWords maps urgency keywords to priorities. Scanned in order;
// the first match wins.
var urgencyWords = []struct {
	word     string
	priority int
}{
	{"urgent", 5},
	{"asap", 5},
	{"immediately", 5},
	{"critical", 5},
	{"today", 4},
	{"tonight", 4},
	{"tomorrow", 4},
	{"soon", 3},
	{"this week", 3},
	{"important", 4},
}

// Split segments text into at most task.MaxCandidates candidates.
// The reference time anchors due-date resolution so callers and tests
// control "today". Empty input yields a single degenerate candidate;
// callers are expected to reject empty text before extraction.
func (s *Splitter) Split(text string, now time.Time) []task.Candidate {
	parts := fragmentPattern.Split(text, -1)

	fragments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 2 {
			fragments = append(fragments, p)
		}
	}
	if len(fragments) == 0 {
		fragments = []string{strings.TrimSpace(text)}
	}
	if len(fragments) > task.MaxCandidates {
		fragments = fragments[:task.MaxCandidates]
	}

	candidates := make([]task.Candidate, 0, len(fragments))
	for _, f := range fragments {
		candidates = append(candidates, task.Candidate{
			Title:           makeActionable(f),
			Priority:        detectPriority(f),
			EstimateMinutes: detectEstimate(f),
			DueDate:         detectDueDate(f, now),
		})
	}
	return candidates
}

// makeActionable turns a fragment into a verb-first title.
func makeActionable(fragment string) string {
	trimmed := fillerPrefix.ReplaceAllString(strings.TrimSpace(fragment), "")
	if startsWithVerb(trimmed) {
		return capitalize(trimmed)
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "meeting") || strings.Contains(lower, "appointment"):
		return "Schedule " + lower
	case strings.Contains(lower, "email") || strings.Contains(lower, "message"):
		return "Send " + lower
	case strings.Contains(lower, "groceries") || strings.Contains(lower, "supplies"):
		return "Buy " + lower
	}
	return "Handle " + lower
}

func startsWithVerb(fragment string) bool {
	lower := strings.ToLower(strings.TrimSpace(fragment))
	for _, v := range verbStarters {
		if strings.HasPrefix(lower, v) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func detectPriority(fragment string) int {
	lower := strings.ToLower(fragment)
	for _, u := range urgencyWords {
		if strings.Contains(lower, u.word) {
			return u.priority
		}
	}
	return task.DefaultPriority
}

func detectEstimate(fragment string) int {
	lower := strings.ToLower(fragment)
	switch {
	case strings.Contains(lower, "quick") || strings.Contains(lower, "brief"):
		return 10
	case strings.Contains(lower, "meeting") || strings.Contains(lower, "call"):
		return 30
	case strings.Contains(lower, "report") || strings.Contains(lower, "write") || strings.Contains(lower, "draft"):
		return 60
	case strings.Contains(lower, "review") || strings.Contains(lower, "read"):
		return 20
	}
	return task.DefaultEstimateMinutes
}

// detectDueDate resolves temporal keywords relative to now. All
// deadlines land on 23:59 local time.
func detectDueDate(fragment string, now time.Time) *time.Time {
	lower := strings.ToLower(fragment)

	switch {
	case strings.Contains(lower, "today") || strings.Contains(lower, "tonight"):
		return endOfDay(now, 0)
	case strings.Contains(lower, "tomorrow"):
		return endOfDay(now, 1)
	case strings.Contains(lower, "this week"):
		// Upcoming Friday; if today is Friday or later, roll to next week.
		days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return endOfDay(now, days)
	case strings.Contains(lower, "next week"):
		return endOfDay(now, 7)
	}
	return nil
}

func endOfDay(now time.Time, addDays int) *time.Time {
	d := now.AddDate(0, 0, addDays)
	eod := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, d.Location())
	return &eod
}
