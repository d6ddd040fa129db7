package statusengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ids(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *domain.TaskStatus
		wantErr bool
	}{
		{name: "empty passes all", in: ""},
		{name: "all passes all", in: "all"},
		{name: "exact status", in: "in-progress", want: ptr(domain.StatusInProgress)},
		{name: "schema-only value rejected", in: "completed", wantErr: true},
		{name: "unknown", in: "blocked", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatusFilter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestMatchesStatus(t *testing.T) {
	task := &domain.Task{Status: domain.StatusDone}

	assert.True(t, MatchesStatus(task, nil))
	assert.True(t, MatchesStatus(task, ptr(domain.StatusDone)))
	assert.False(t, MatchesStatus(task, ptr(domain.StatusTodo)))
}

func TestDayWindow(t *testing.T) {
	day, err := ParseDueDate("2025-09-10", time.UTC)
	require.NoError(t, err)

	from, to := DayWindow(day, time.UTC)

	assert.True(t, from.Equal(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)), "from = %v", from)
	assert.True(t, to.Equal(time.Date(2025, 9, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC)), "to = %v", to)
}

func TestDayWindow_ReferenceTimezone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	day, err := ParseDueDate("2025-09-10", loc)
	require.NoError(t, err)

	from, to := DayWindow(day, loc)

	assert.Equal(t, "2025-09-10T05:00:00Z", from.UTC().Format(time.RFC3339))
	assert.Equal(t, "2025-09-11T04:59:59.999Z", to.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

func TestParseDueDate_Invalid(t *testing.T) {
	_, err := ParseDueDate("10/09/2025", time.UTC)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMatchesDueWindow(t *testing.T) {
	from, to := DayWindow(*at("2025-09-10T12:00:00Z"), time.UTC)

	tests := []struct {
		name string
		due  *time.Time
		want bool
	}{
		{name: "start of day", due: at("2025-09-10T00:00:00.000Z"), want: true},
		{name: "end of day", due: at("2025-09-10T23:59:59.999Z"), want: true},
		{name: "day before", due: at("2025-09-09T23:59:59.999Z"), want: false},
		{name: "next day", due: at("2025-09-11T00:00:00.000Z"), want: false},
		{name: "no due date", due: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{DueDate: tt.due}
			assert.Equal(t, tt.want, MatchesDueWindow(task, &from, &to))
		})
	}
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, s)

	s, err = ParseSort("dueDate", "")
	require.NoError(t, err)
	assert.Equal(t, ports.TaskSort{Field: ports.SortByDueDate}, s)

	s, err = ParseSort("title", "DESC")
	require.NoError(t, err)
	assert.Equal(t, ports.TaskSort{Field: ports.SortByTitle, Descending: true}, s)

	_, err = ParseSort("password", "asc")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ParseSort("title", "sideways")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSort_DueDateAbsentLastBothDirections(t *testing.T) {
	build := func() []*domain.Task {
		return []*domain.Task{
			{ID: "none"},
			{ID: "far", DueDate: at("2099-12-31T00:00:00Z")},
			{ID: "near", DueDate: at("2025-01-01T00:00:00Z")},
		}
	}

	asc := build()
	Sort(asc, ports.TaskSort{Field: ports.SortByDueDate})
	assert.Equal(t, []string{"near", "far", "none"}, ids(asc))

	desc := build()
	Sort(desc, ports.TaskSort{Field: ports.SortByDueDate, Descending: true})
	assert.Equal(t, []string{"far", "near", "none"}, ids(desc))
}

func TestSort_DefaultIsNewestFirst(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "old", CreatedAt: *at("2025-01-01T00:00:00Z")},
		{ID: "new", CreatedAt: *at("2025-03-01T00:00:00Z")},
		{ID: "mid", CreatedAt: *at("2025-02-01T00:00:00Z")},
	}

	Sort(tasks, ports.TaskSort{})

	assert.Equal(t, []string{"new", "mid", "old"}, ids(tasks))
}

func TestSort_StatusFollowsLifecycle(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "d", Status: domain.StatusDone},
		{ID: "t", Status: domain.StatusTodo},
		{ID: "p", Status: domain.StatusInProgress},
	}

	Sort(tasks, ports.TaskSort{Field: ports.SortByStatus})

	assert.Equal(t, []string{"t", "p", "d"}, ids(tasks))
}
