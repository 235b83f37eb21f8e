package reporting

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// SortField names a sortable report column.
type SortField string

const (
	SortByTitle          SortField = "title"
	SortByProject        SortField = "project"
	SortByStatus         SortField = "status"
	SortByPriority       SortField = "priority"
	SortByCreatedAt      SortField = "createdAt"
	SortByDueDate        SortField = "dueDate"
	SortByCompletedAt    SortField = "completedAt"
	SortByTimeToComplete SortField = "timeToComplete"
	SortByDaysUntilDue   SortField = "daysUntilDue"
)

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var sortFields = []SortField{
	SortByTitle, SortByProject, SortByStatus, SortByPriority, SortByCreatedAt,
	SortByDueDate, SortByCompletedAt, SortByTimeToComplete, SortByDaysUntilDue,
}

// ParseSort validates a field and direction; empty values default to
// createdAt descending.
func ParseSort(field, direction string) (SortField, Direction, error) {
	f := SortField(strings.TrimSpace(field))
	if f == "" {
		f = SortByCreatedAt
	}
	if !slices.Contains(sortFields, f) {
		return "", "", fmt.Errorf("unknown sort field %q", field)
	}

	switch d := Direction(strings.ToLower(strings.TrimSpace(direction))); d {
	case "":
		return f, Desc, nil
	case Asc, Desc:
		return f, d, nil
	default:
		return "", "", fmt.Errorf("unknown sort order %q", direction)
	}
}

// Sort returns a stably sorted copy of entries.
func Sort(entries []Entry, field SortField, dir Direction) []Entry {
	out := slices.Clone(entries)
	compare := comparator(field)
	if compare == nil {
		return out
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		c := compare(a, b)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

func comparator(field SortField) func(a, b Entry) int {
	switch field {
	case SortByTitle:
		return func(a, b Entry) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortByProject:
		return func(a, b Entry) int {
			return strings.Compare(strings.ToLower(a.ProjectName), strings.ToLower(b.ProjectName))
		}
	case SortByStatus:
		return func(a, b Entry) int {
			return strings.Compare(string(a.Status), string(b.Status))
		}
	case SortByPriority:
		return func(a, b Entry) int {
			return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
		}
	case SortByCreatedAt:
		return func(a, b Entry) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	case SortByDueDate:
		return func(a, b Entry) int {
			return cmp.Compare(unixMilli(a.DueDate), unixMilli(b.DueDate))
		}
	case SortByCompletedAt:
		return func(a, b Entry) int {
			return cmp.Compare(unixMilli(a.CompletedAt), unixMilli(b.CompletedAt))
		}
	case SortByTimeToComplete:
		return func(a, b Entry) int {
			return cmp.Compare(durationOrZero(a.TimeToComplete), durationOrZero(b.TimeToComplete))
		}
	case SortByDaysUntilDue:
		return func(a, b Entry) int {
			return cmp.Compare(daysOrLast(a.DaysUntilDue), daysOrLast(b.DaysUntilDue))
		}
	}
	return nil
}

// unixMilli maps a missing time to zero so it sorts as the earliest value.
func unixMilli(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func durationOrZero(d *time.Duration) time.Duration {
	if d == nil {
		return 0
	}
	return *d
}

// daysOrLast places tasks without a due distance after every real value.
func daysOrLast(days *int) int {
	if days == nil {
		return math.MaxInt
	}
	return *days
}
