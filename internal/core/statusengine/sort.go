package statusengine

import (
	"sort"
	"strings"

	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

// DefaultSort is applied when the caller names no sort field.
var DefaultSort = ports.TaskSort{Field: ports.SortByCreatedAt, Descending: true}

var sortFields = map[string]ports.TaskSortField{
	string(ports.SortByCreatedAt): ports.SortByCreatedAt,
	string(ports.SortByUpdatedAt): ports.SortByUpdatedAt,
	string(ports.SortByDueDate):   ports.SortByDueDate,
	string(ports.SortByTitle):     ports.SortByTitle,
	string(ports.SortByStatus):    ports.SortByStatus,
}

// statusRank orders statuses by lifecycle rather than alphabetically.
var statusRank = map[domain.TaskStatus]int{
	domain.StatusTodo:       0,
	domain.StatusInProgress: 1,
	domain.StatusDone:       2,
}

// ParseSort maps the sortBy/sortOrder query pair to a TaskSort. An empty
// field yields DefaultSort; an empty order with a field means ascending.
func ParseSort(field, order string) (ports.TaskSort, error) {
	field = strings.TrimSpace(field)
	order = strings.ToLower(strings.TrimSpace(order))
	if field == "" {
		return DefaultSort, nil
	}
	f, ok := sortFields[field]
	if !ok {
		return ports.TaskSort{}, domain.Invalid("sortBy", "must be one of: createdAt, updatedAt, dueDate, title, status")
	}
	switch order {
	case "", "asc":
		return ports.TaskSort{Field: f}, nil
	case "desc":
		return ports.TaskSort{Field: f, Descending: true}, nil
	}
	return ports.TaskSort{}, domain.Invalid("sortOrder", "must be asc or desc")
}

// Sort orders tasks in place. Tasks without a due date always come after
// dated tasks when sorting by dueDate, whatever the direction.
func Sort(tasks []*domain.Task, s ports.TaskSort) {
	if s.Field == "" {
		s = DefaultSort
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j], s)
	})
}

func less(a, b *domain.Task, s ports.TaskSort) bool {
	if s.Field == ports.SortByDueDate {
		switch {
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		}
		if s.Descending {
			return a.DueDate.After(*b.DueDate)
		}
		return a.DueDate.Before(*b.DueDate)
	}

	c := compare(a, b, s.Field)
	if s.Descending {
		return c > 0
	}
	return c < 0
}

func compare(a, b *domain.Task, field ports.TaskSortField) int {
	switch field {
	case ports.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case ports.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case ports.SortByStatus:
		return statusRank[a.Status] - statusRank[b.Status]
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}
