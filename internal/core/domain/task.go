package domain

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Statuses lists every accepted status value.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// ParseTaskStatus accepts only the enumerated values. Any status may move to
// any other; there is no transition graph.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), nil
	}
	return "", Invalid("status", "must be one of: todo, in-progress, done")
}

// Task belongs to a project. It carries no owner: authorization is always
// derived from the parent project.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	DueDate     *time.Time
	ProjectID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskEventType names a recorded task change.
type TaskEventType string

const (
	TaskCreated       TaskEventType = "created"
	TaskUpdated       TaskEventType = "updated"
	TaskMoved         TaskEventType = "moved"
	TaskStatusChanged TaskEventType = "status_changed"
	TaskDeleted       TaskEventType = "deleted"
)

// TaskEvent is one entry of a task's activity history.
type TaskEvent struct {
	ID            string
	TaskID        string
	ProjectID     string
	ActorID       string
	Type          TaskEventType
	FromStatus    TaskStatus
	ToStatus      TaskStatus
	FromProjectID string
	ToProjectID   string
	OccurredAt    time.Time
}
