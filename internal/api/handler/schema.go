package handler

import (
	"bytes"
	"encoding/json"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// messageResponse acknowledges an operation that returns no resource.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// --- Projects ---

type createProjectRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type updateProjectRequest struct {
	Title       *string `json:"title"       validate:"omitnil,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type projectEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Project projectResponse `json:"project"`
}

type projectListEnvelope struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Projects []projectResponse `json:"projects"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	ProjectID   string  `json:"projectId"   validate:"required"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}

// updateTaskRequest leaves absent fields unchanged; "dueDate": null clears
// the due date.
type updateTaskRequest struct {
	Title       *string      `json:"title"       validate:"omitnil,max=200"`
	Description *string      `json:"description" validate:"omitnil,max=2000"`
	Status      *string      `json:"status"`
	DueDate     nullableDate `json:"dueDate"`
	ProjectID   *string      `json:"projectId"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	ProjectID   string     `json:"projectId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type taskEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Task    taskResponse `json:"task"`
}

type taskListEnvelope struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Tasks   []taskResponse `json:"tasks"`
}

type taskEventResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ActorID       string    `json:"actorId"`
	ProjectID     string    `json:"projectId"`
	FromStatus    string    `json:"fromStatus,omitempty"`
	ToStatus      string    `json:"toStatus,omitempty"`
	FromProjectID string    `json:"fromProjectId,omitempty"`
	ToProjectID   string    `json:"toProjectId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type taskHistoryEnvelope struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Events  []taskEventResponse `json:"events"`
}

// nullableDate tells an absent field from an explicit null.
type nullableDate struct {
	Set   bool
	Null  bool
	Value string
}

func (d *nullableDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Null = true
		return nil
	}
	return json.Unmarshal(b, &d.Value)
}
