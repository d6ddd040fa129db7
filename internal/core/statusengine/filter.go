// Package statusengine holds the stateless list policy for tasks: which
// statuses a listing accepts, the due-date day window, and the sort contract.
package statusengine

import (
	"strings"
	"time"

	"github.com/mini-project-manager/tracker/internal/core/domain"
)

// FilterAll passes every task.
const FilterAll = "all"

const dateLayout = "2006-01-02"

// ParseStatusFilter returns nil for "" or "all", otherwise the exact status
// to match.
func ParseStatusFilter(s string) (*domain.TaskStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == FilterAll {
		return nil, nil
	}
	st, err := domain.ParseTaskStatus(s)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// MatchesStatus reports whether t passes the status filter.
func MatchesStatus(t *domain.Task, status *domain.TaskStatus) bool {
	return status == nil || t.Status == *status
}

// DayWindow returns the first and last millisecond of the calendar day that
// contains day, in loc: [00:00:00.000, 23:59:59.999].
func DayWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	return start, end
}

// ParseDueDate reads a YYYY-MM-DD date in loc, or an RFC 3339 timestamp whose
// calendar day in loc is used.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.In(loc), nil
	}
	return time.Time{}, domain.Invalid("dueDate", "must be a date (YYYY-MM-DD)")
}

// MatchesDueWindow reports whether t's due date falls inside [from, to].
// A nil bound is open.
func MatchesDueWindow(t *domain.Task, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if t.DueDate == nil {
		return false
	}
	if from != nil && t.DueDate.Before(*from) {
		return false
	}
	if to != nil && t.DueDate.After(*to) {
		return false
	}
	return true
}
