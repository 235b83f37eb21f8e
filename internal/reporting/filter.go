package reporting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// Timing selects tasks by their on-time completion state.
type Timing string

const (
	TimingAll    Timing = "all"
	TimingOnTime Timing = "on_time"
	TimingLate   Timing = "late"
)

// ParseTiming accepts "all", "on_time"/"onTime" and "late"; empty means all.
func ParseTiming(raw string) (Timing, error) {
	switch strings.TrimSpace(raw) {
	case "", string(TimingAll):
		return TimingAll, nil
	case string(TimingOnTime), "onTime":
		return TimingOnTime, nil
	case string(TimingLate):
		return TimingLate, nil
	default:
		return "", fmt.Errorf("unknown timing %q", raw)
	}
}

// Filter holds the report filters. Empty fields do not constrain; all set
// fields must match. From and To are inclusive bounds on creation time; use
// EndOfDay to make To cover a whole calendar day.
type Filter struct {
	Statuses    []models.TaskStatus
	Priorities  []models.TaskPriority
	ProjectIDs  []uint64
	Search      string
	From        *time.Time
	To          *time.Time
	OverdueOnly bool
	Timing      Timing
}

// Match reports whether e satisfies every filter.
func (f Filter) Match(e Entry) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, e.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !slices.Contains(f.Priorities, e.Priority) {
		return false
	}
	if len(f.ProjectIDs) > 0 && !slices.Contains(f.ProjectIDs, e.ProjectID) {
		return false
	}

	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		if !strings.Contains(strings.ToLower(e.Title), search) &&
			!strings.Contains(strings.ToLower(e.Description), search) &&
			!strings.Contains(strings.ToLower(e.ProjectName), search) {
			return false
		}
	}

	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.CreatedAt.After(*f.To) {
		return false
	}

	if f.OverdueOnly && !e.IsOverdue {
		return false
	}

	switch f.Timing {
	case TimingOnTime:
		if e.CompletedOnTime == nil || !*e.CompletedOnTime {
			return false
		}
	case TimingLate:
		if e.CompletedOnTime == nil || *e.CompletedOnTime {
			return false
		}
	}

	return true
}

// Apply returns the entries matching f, in their original order.
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}
