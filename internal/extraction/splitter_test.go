package extraction

import (
	"strings"
	"testing"
	"time"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// refNow is a Monday, so workweek-relative due dates are predictable.
var refNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func TestSplitter_Split_MultipleFragments(t *testing.T) {
	s := NewSplitter()

	got := s.Split("call dentist tomorrow, buy groceries, and finish report", refNow)
	if len(got) != 3 {
		t.Fatalf("Split() got %d candidates, want 3: %+v", len(got), got)
	}

	if got[0].Title != "Call dentist tomorrow" {
		t.Errorf("candidates[0].Title = %q, want 'Call dentist tomorrow'", got[0].Title)
	}
	if got[0].Priority != 4 {
		t.Errorf("candidates[0].Priority = %d, want 4", got[0].Priority)
	}
	if got[0].DueDate == nil {
		t.Fatal("candidates[0].DueDate = nil, want tomorrow")
	}
	wantDue := time.Date(2026, time.March, 3, 23, 59, 0, 0, time.UTC)
	if !got[0].DueDate.Equal(wantDue) {
		t.Errorf("candidates[0].DueDate = %v, want %v", got[0].DueDate, wantDue)
	}

	if got[1].Title != "Buy groceries" {
		t.Errorf("candidates[1].Title = %q, want 'Buy groceries'", got[1].Title)
	}
	if got[1].DueDate != nil {
		t.Errorf("candidates[1].DueDate = %v, want nil", got[1].DueDate)
	}

	if got[2].Title != "Finish report" {
		t.Errorf("candidates[2].Title = %q, want 'Finish report'", got[2].Title)
	}
	if got[2].EstimateMinutes != 60 {
		t.Errorf("candidates[2].EstimateMinutes = %d, want 60", got[2].EstimateMinutes)
	}
}

func TestSplitter_Split_Titles(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"verb kept and capitalized", "review the budget", "Review the budget"},
		{"filler prefix stripped", "I need to write the summary", "Write the summary"},
		{"have to stripped", "have to call the bank", "Call the bank"},
		{"meeting gets schedule", "team sync meeting", "Schedule team sync meeting"},
		{"email gets send", "that email to legal", "Send that email to legal"},
		{"groceries gets buy", "groceries for the week", "Buy groceries for the week"},
		{"fallback handle", "the broken fence", "Handle the broken fence"},
	}
	s := NewSplitter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Split(tt.in, refNow)
			if len(got) != 1 {
				t.Fatalf("Split(%q) got %d candidates, want 1", tt.in, len(got))
			}
			if got[0].Title != tt.want {
				t.Errorf("Split(%q).Title = %q, want %q", tt.in, got[0].Title, tt.want)
			}
		})
	}
}

func TestSplitter_Split_Priority(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"fix the login bug urgent", 5},
		{"reply asap", 5},
		{"pay rent today", 4},
		{"pack for the trip tomorrow", 4},
		{"clean the garage soon", 3},
		{"water the plants", 3},
	}
	s := NewSplitter()
	for _, tt := range tests {
		got := s.Split(tt.in, refNow)
		if len(got) != 1 {
			t.Fatalf("Split(%q) got %d candidates, want 1", tt.in, len(got))
		}
		if got[0].Priority != tt.want {
			t.Errorf("Split(%q).Priority = %d, want %d", tt.in, got[0].Priority, tt.want)
		}
	}
}

func TestSplitter_Split_Estimates(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"quick sync with Pat", 10},
		{"call the landlord", 30},
		{"write the project report", 60},
		{"review the contract", 20},
		{"water the plants", 30},
	}
	s := NewSplitter()
	for _, tt := range tests {
		got := s.Split(tt.in, refNow)
		if got[0].EstimateMinutes != tt.want {
			t.Errorf("Split(%q).EstimateMinutes = %d, want %d", tt.in, got[0].EstimateMinutes, tt.want)
		}
	}
}

func TestSplitter_Split_DueDates(t *testing.T) {
	s := NewSplitter()

	tests := []struct {
		name string
		in   string
		now  time.Time
		want *time.Time
	}{
		{
			name: "today",
			in:   "submit the form today",
			now:  refNow,
			want: eod(2026, time.March, 2),
		},
		{
			name: "tonight",
			in:   "book flights tonight",
			now:  refNow,
			want: eod(2026, time.March, 2),
		},
		{
			name: "this week lands on friday",
			in:   "finish taxes this week",
			now:  refNow, // Monday
			want: eod(2026, time.March, 6),
		},
		{
			name: "this week on a friday rolls over",
			in:   "finish taxes this week",
			now:  time.Date(2026, time.March, 6, 9, 0, 0, 0, time.UTC), // Friday
			want: eod(2026, time.March, 13),
		},
		{
			name: "next week",
			in:   "plan the offsite next week",
			now:  refNow,
			want: eod(2026, time.March, 9),
		},
		{
			name: "no temporal keyword",
			in:   "organize the bookshelf",
			now:  refNow,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Split(tt.in, tt.now)
			if len(got) != 1 {
				t.Fatalf("Split(%q) got %d candidates, want 1", tt.in, len(got))
			}
			switch {
			case tt.want == nil && got[0].DueDate != nil:
				t.Errorf("DueDate = %v, want nil", got[0].DueDate)
			case tt.want != nil && got[0].DueDate == nil:
				t.Errorf("DueDate = nil, want %v", tt.want)
			case tt.want != nil && !got[0].DueDate.Equal(*tt.want):
				t.Errorf("DueDate = %v, want %v", got[0].DueDate, tt.want)
			}
		})
	}
}

func TestSplitter_Split_CapsCandidates(t *testing.T) {
	s := NewSplitter()
	in := "plan aaa; plan bbb; plan ccc; plan ddd; plan eee; plan fff; plan ggg; plan hhh"

	got := s.Split(in, refNow)
	if len(got) != task.MaxCandidates {
		t.Errorf("Split() got %d candidates, want %d", len(got), task.MaxCandidates)
	}
}

func TestSplitter_Split_DegenerateInput(t *testing.T) {
	s := NewSplitter()

	// Empty and tiny inputs still yield exactly one candidate; the HTTP
	// layer rejects blank text before extraction runs.
	for _, in := range []string{"", "   ", "a. b"} {
		got := s.Split(in, refNow)
		if len(got) != 1 {
			t.Errorf("Split(%q) got %d candidates, want 1", in, len(got))
		}
	}
}

func TestSplitter_Split_Bounds(t *testing.T) {
	s := NewSplitter()
	inputs := []string{
		"call dentist tomorrow, buy groceries, and finish report",
		strings.Repeat("organize the storage closet and then ", 20),
		strings.Repeat("x", 5000),
		"urgent urgent urgent. asap; today\ntomorrow",
	}

	for _, in := range inputs {
		for _, c := range s.Split(in, refNow) {
			if c.Priority < task.MinPriority || c.Priority > task.MaxPriority {
				t.Errorf("Split(%.30q...) priority %d out of range", in, c.Priority)
			}
			if c.EstimateMinutes < task.MinEstimateMinutes || c.EstimateMinutes > task.MaxEstimateMinutes {
				t.Errorf("Split(%.30q...) estimate %d out of range", in, c.EstimateMinutes)
			}
		}
	}
}

func eod(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 23, 59, 0, 0, time.UTC)
	return &d
}
