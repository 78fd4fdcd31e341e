package task

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses accepted by the schema.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Assignee is the populated user summary embedded in task responses.
type Assignee struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type Task struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id,omitempty"`
	AssignedUser   *Assignee  `json:"assigned_user,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Filter restricts task listings by exact match.
type Filter struct {
	Status         string
	AssignedUserID *uuid.UUID
}

// CreateInput carries the fields of a new task.
type CreateInput struct {
	Title          string
	Description    string
	Status         string
	AssignedUserID *uuid.UUID
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title          *string
	Description    *string
	Status         *string
	AssignedUserID *uuid.UUID
}

// IsEmpty reports whether the update changes nothing.
func (in UpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil && in.AssignedUserID == nil
}

// ListResult is a single page of tasks plus pagination metadata.
type ListResult struct {
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Pages int     `json:"pages"`
	Tasks []*Task `json:"tasks"`
}
