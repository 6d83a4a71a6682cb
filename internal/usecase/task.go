package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/metrics"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     time.Time
	OwnerID     string // empty means the authenticated caller
}

func (u *TaskUsecase) Create(ctx context.Context, input CreateTaskInput, ownerID string) (*domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		OwnerID:     input.OwnerID,
	}

	created, err := u.repo.Add(ctx, task, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.Inc()
	return created, nil
}

func (u *TaskUsecase) GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, err := u.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) ListPage(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error) {
	tasks, total, err := u.repo.ListPage(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

// Update verifies the task exists for this owner before writing. The
// repository's own zero-rows guard still covers the window between the
// check and the write; both paths produce the same not-found outcome.
func (u *TaskUsecase) Update(ctx context.Context, id string, input repository.UpdateTaskInput, ownerID string) (*domain.Task, error) {
	if _, err := u.GetByID(ctx, id, ownerID); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, id, input, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

// Delete soft-deletes. Deleting the same task twice reports not-found
// on the second call.
func (u *TaskUsecase) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := u.GetByID(ctx, id, ownerID); err != nil {
		return err
	}

	if err := u.repo.SoftDelete(ctx, id, ownerID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
