package reporting

import (
	"math"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// Analytics aggregates a task set. Rates are integer percentages in [0, 100].
type Analytics struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	InProgress        int `json:"inProgress"`
	Todo              int `json:"todo"`
	Overdue           int `json:"overdue"`
	CompletedOnTime   int `json:"completedOnTime"`
	CompletedLate     int `json:"completedLate"`
	CompletionRate    int `json:"completionRate"`
	OnTimeRate        int `json:"onTimeRate"`
	AvgCompletionDays int `json:"avgCompletionDays"`
}

// Summarize computes the analytics of entries.
func Summarize(entries []Entry) Analytics {
	var (
		a          Analytics
		totalTime  time.Duration
		timedCount int
	)

	a.Total = len(entries)
	for _, e := range entries {
		switch e.Status {
		case models.TaskStatusCompleted:
			a.Completed++
		case models.TaskStatusInProgress:
			a.InProgress++
		case models.TaskStatusTodo:
			a.Todo++
		}

		if e.IsOverdue {
			a.Overdue++
		}

		if e.CompletedOnTime != nil {
			if *e.CompletedOnTime {
				a.CompletedOnTime++
			} else {
				a.CompletedLate++
			}
		}

		if e.TimeToComplete != nil && *e.TimeToComplete != 0 {
			totalTime += *e.TimeToComplete
			timedCount++
		}
	}

	a.CompletionRate = percent(a.Completed, a.Total)
	a.OnTimeRate = percent(a.CompletedOnTime, a.Completed)
	if timedCount > 0 {
		avg := float64(totalTime) / float64(timedCount)
		a.AvgCompletionDays = int(math.Round(avg / float64(Day)))
	}

	return a
}

// percent returns round(100*part/whole), 0 for an empty whole, clamped to [0, 100].
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(part) / float64(whole)))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
