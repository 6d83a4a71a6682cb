package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

type Status string

const (
	StatusPending Status = "PENDING"
	StatusDone    Status = "DONE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Task belongs to exactly one user. It is only ever read or written
// through queries scoped to that owner.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     time.Time
	OwnerID     string

	Active  bool
	Deleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
