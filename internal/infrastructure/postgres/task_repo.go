package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

const taskColumns = `id, title, description, status, priority, due_date, owner_id, active, deleted, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// FindByID is scoped to the owner. A missing, deleted, or foreign row
// all come back as ErrTaskNotFound.
func (r *TaskRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE NOT deleted AND id = $1 AND owner_id = $2`

	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanTask(row)
}

// Add inserts a task. Owner defaults to the creator and due date to
// "now" when unspecified.
func (r *TaskRepository) Add(ctx context.Context, task *domain.Task, ownerID string) (*domain.Task, error) {
	if task.OwnerID == "" {
		task.OwnerID = ownerID
	}
	if task.DueDate.IsZero() {
		task.DueDate = time.Now()
	}

	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.OwnerID,
	)
	return scanTask(row)
}

// ListPage returns the owner's non-deleted tasks ordered by creation
// time, most recent first, plus the total over the same predicate.
func (r *TaskRepository) ListPage(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE NOT deleted AND owner_id = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, ownerID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	var total int
	err = r.pool.QueryRow(ctx,
		`SELECT count(*) FROM tasks WHERE NOT deleted AND owner_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

// Update applies a partial update as a single conditional statement.
// The id+owner predicate makes a concurrent delete or a cross-tenant
// attempt surface as zero rows matched, never a silent overwrite.
func (r *TaskRepository) Update(ctx context.Context, id string, input repository.UpdateTaskInput, ownerID string) (*domain.Task, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id, ownerID}

	if input.Title != nil {
		args = append(args, *input.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Status != nil {
		args = append(args, *input.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	if input.Priority != nil {
		args = append(args, *input.Priority)
		set = append(set, fmt.Sprintf("priority = $%d", len(args)))
	}
	if input.DueDate != nil {
		args = append(args, *input.DueDate)
		set = append(set, fmt.Sprintf("due_date = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE NOT deleted AND id = $1 AND owner_id = $2
		RETURNING `+taskColumns,
		strings.Join(set, ", "))

	row := r.pool.QueryRow(ctx, query, args...)
	return scanTask(row)
}

// SoftDelete marks the row deleted; it is never physically removed.
// Zero rows matched means the task was already gone or isn't the
// caller's, both reported as ErrTaskNotFound.
func (r *TaskRepository) SoftDelete(ctx context.Context, id, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET deleted = TRUE, active = FALSE, updated_at = NOW()
		WHERE NOT deleted AND id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.OwnerID, &t.Active, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
