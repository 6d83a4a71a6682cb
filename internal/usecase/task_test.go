package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
	"github.com/pedrohsilva/tarefas-api/internal/usecase"
)

type fakeTaskRepo struct {
	findByID   func(ctx context.Context, id, ownerID string) (*domain.Task, error)
	add        func(ctx context.Context, task *domain.Task, ownerID string) (*domain.Task, error)
	listPage   func(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error)
	update     func(ctx context.Context, id string, input repository.UpdateTaskInput, ownerID string) (*domain.Task, error)
	softDelete func(ctx context.Context, id, ownerID string) error
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	return r.findByID(ctx, id, ownerID)
}

func (r *fakeTaskRepo) Add(ctx context.Context, task *domain.Task, ownerID string) (*domain.Task, error) {
	return r.add(ctx, task, ownerID)
}

func (r *fakeTaskRepo) ListPage(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error) {
	return r.listPage(ctx, ownerID, skip, limit)
}

func (r *fakeTaskRepo) Update(ctx context.Context, id string, input repository.UpdateTaskInput, ownerID string) (*domain.Task, error) {
	return r.update(ctx, id, input, ownerID)
}

func (r *fakeTaskRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	return r.softDelete(ctx, id, ownerID)
}

// ownedTaskRepo behaves like the real one: every lookup is scoped to
// the owner, and foreign or missing rows are indistinguishable.
func ownedTaskRepo(task *domain.Task) *fakeTaskRepo {
	return &fakeTaskRepo{
		findByID: func(_ context.Context, id, ownerID string) (*domain.Task, error) {
			if task == nil || id != task.ID || ownerID != task.OwnerID {
				return nil, domain.ErrTaskNotFound
			}
			return task, nil
		},
	}
}

var anaTask = &domain.Task{
	ID:       "task-1",
	Title:    "Buy milk",
	Status:   domain.StatusPending,
	Priority: domain.PriorityLow,
	OwnerID:  "ana",
}

// ---- Create ----

func TestCreate_DefaultsStatusAndPriority(t *testing.T) {
	var captured *domain.Task
	repo := &fakeTaskRepo{
		add: func(_ context.Context, task *domain.Task, ownerID string) (*domain.Task, error) {
			captured = task
			task.ID = "task-1"
			if task.OwnerID == "" {
				task.OwnerID = ownerID
			}
			return task, nil
		},
	}

	created, err := usecase.NewTaskUsecase(repo).Create(context.Background(),
		usecase.CreateTaskInput{Title: "Buy milk"}, "ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Status != domain.StatusPending {
		t.Errorf("status = %q, want %q", captured.Status, domain.StatusPending)
	}
	if captured.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want %q", captured.Priority, domain.PriorityMedium)
	}
	if created.OwnerID != "ana" {
		t.Errorf("owner = %q, want %q", created.OwnerID, "ana")
	}
}

func TestCreate_ExplicitOwnerIsKept(t *testing.T) {
	repo := &fakeTaskRepo{
		add: func(_ context.Context, task *domain.Task, ownerID string) (*domain.Task, error) {
			if task.OwnerID == "" {
				task.OwnerID = ownerID
			}
			return task, nil
		},
	}

	created, err := usecase.NewTaskUsecase(repo).Create(context.Background(),
		usecase.CreateTaskInput{Title: "Buy milk", OwnerID: "bob", DueDate: time.Now()}, "ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.OwnerID != "bob" {
		t.Errorf("owner = %q, want %q", created.OwnerID, "bob")
	}
}

// ---- GetByID ----

func TestGetByID_OtherOwner_ReturnsErrTaskNotFound(t *testing.T) {
	uc := usecase.NewTaskUsecase(ownedTaskRepo(anaTask))

	_, err := uc.GetByID(context.Background(), "task-1", "bob")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("want ErrTaskNotFound, got %v", err)
	}
}

func TestGetByID_Owner_Succeeds(t *testing.T) {
	uc := usecase.NewTaskUsecase(ownedTaskRepo(anaTask))

	task, err := uc.GetByID(context.Background(), "task-1", "ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "task-1" {
		t.Errorf("id = %q, want task-1", task.ID)
	}
}

// ---- Update ----

func TestUpdate_OtherOwner_ReturnsErrTaskNotFound(t *testing.T) {
	repo := ownedTaskRepo(anaTask)
	repo.update = func(_ context.Context, _ string, _ repository.UpdateTaskInput, _ string) (*domain.Task, error) {
		t.Fatal("repository update must not run when the pre-check fails")
		return nil, nil
	}

	_, err := usecase.NewTaskUsecase(repo).Update(context.Background(), "task-1",
		repository.UpdateTaskInput{}, "bob")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("want ErrTaskNotFound, got %v", err)
	}
}

func TestUpdate_ConcurrentDelete_ReturnsErrTaskNotFound(t *testing.T) {
	// The pre-check sees the task, but the conditional update matches
	// zero rows because another request deleted it in between.
	repo := ownedTaskRepo(anaTask)
	repo.update = func(_ context.Context, _ string, _ repository.UpdateTaskInput, _ string) (*domain.Task, error) {
		return nil, domain.ErrTaskNotFound
	}

	_, err := usecase.NewTaskUsecase(repo).Update(context.Background(), "task-1",
		repository.UpdateTaskInput{}, "ana")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("want ErrTaskNotFound, got %v", err)
	}
}

func TestUpdate_Owner_Succeeds(t *testing.T) {
	done := domain.StatusDone
	repo := ownedTaskRepo(anaTask)
	repo.update = func(_ context.Context, id string, input repository.UpdateTaskInput, ownerID string) (*domain.Task, error) {
		updated := *anaTask
		updated.Status = *input.Status
		return &updated, nil
	}

	task, err := usecase.NewTaskUsecase(repo).Update(context.Background(), "task-1",
		repository.UpdateTaskInput{Status: &done}, "ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.StatusDone {
		t.Errorf("status = %q, want %q", task.Status, domain.StatusDone)
	}
}

// ---- Delete ----

func TestDelete_OtherOwner_ReturnsErrTaskNotFound(t *testing.T) {
	uc := usecase.NewTaskUsecase(ownedTaskRepo(anaTask))

	err := uc.Delete(context.Background(), "task-1", "bob")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("want ErrTaskNotFound, got %v", err)
	}
}

func TestDelete_Twice_SecondReturnsErrTaskNotFound(t *testing.T) {
	deleted := false
	repo := &fakeTaskRepo{
		findByID: func(_ context.Context, id, ownerID string) (*domain.Task, error) {
			if deleted || id != anaTask.ID || ownerID != anaTask.OwnerID {
				return nil, domain.ErrTaskNotFound
			}
			return anaTask, nil
		},
		softDelete: func(_ context.Context, id, ownerID string) error {
			if deleted {
				return domain.ErrTaskNotFound
			}
			deleted = true
			return nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	if err := uc.Delete(context.Background(), "task-1", "ana"); err != nil {
		t.Fatalf("first delete: unexpected error: %v", err)
	}

	err := uc.Delete(context.Background(), "task-1", "ana")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("second delete: want ErrTaskNotFound, got %v", err)
	}
}

// ---- ListPage ----

func TestListPage_ScopedToOwner(t *testing.T) {
	repo := &fakeTaskRepo{
		listPage: func(_ context.Context, ownerID string, skip, limit int) ([]*domain.Task, int, error) {
			if ownerID != "ana" {
				return nil, 0, nil
			}
			return []*domain.Task{anaTask}, 1, nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	tasks, total, err := uc.ListPage(context.Background(), "bob", 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(tasks) != 0 {
		t.Errorf("other owner sees %d tasks (total %d), want none", len(tasks), total)
	}

	tasks, total, err = uc.ListPage(context.Background(), "ana", 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(tasks) != 1 {
		t.Errorf("owner sees %d tasks (total %d), want 1", len(tasks), total)
	}
}
