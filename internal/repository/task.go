package repository

import (
	"context"
	"time"

	"github.com/pedrohsilva/tarefas-api/internal/domain"
)

// UpdateTaskInput carries a partial task update. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	DueDate     *time.Time
}

// Every operation except Add takes the owner id as a mandatory scoping
// parameter; the underlying predicate is always owner_id = caller AND
// NOT deleted. A task that is missing, soft-deleted, or owned by
// someone else yields the same ErrTaskNotFound.
type TaskRepository interface {
	FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Add(ctx context.Context, task *domain.Task, ownerID string) (*domain.Task, error)
	ListPage(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error)
	Update(ctx context.Context, id string, input UpdateTaskInput, ownerID string) (*domain.Task, error)
	SoftDelete(ctx context.Context, id, ownerID string) error
}
