package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
	"github.com/pedrohsilva/tarefas-api/internal/usecase"
)

func TestUserUpdate_Missing_ReturnsErrUserNotFound(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, err := usecase.NewUserUsecase(repo).Update(context.Background(), "ghost",
		repository.UpdateUserInput{})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdate_EmailConflict_ReturnsErrEmailTaken(t *testing.T) {
	email := "taken@x.com"
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return testUser, nil
		},
		update: func(_ context.Context, _ string, _ repository.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	_, err := usecase.NewUserUsecase(repo).Update(context.Background(), "user-1",
		repository.UpdateUserInput{Email: &email})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("want ErrEmailTaken, got %v", err)
	}
}

func TestUserUpdatePassword_Empty_ReturnsErrMissingFields(t *testing.T) {
	err := usecase.NewUserUsecase(&fakeUserRepo{}).UpdatePassword(context.Background(), "user-1", "")
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Errorf("want ErrMissingFields, got %v", err)
	}
}

func TestUserDelete_Twice_SecondReturnsErrUserNotFound(t *testing.T) {
	deleted := false
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			if deleted || id != testUser.ID {
				return nil, domain.ErrUserNotFound
			}
			return testUser, nil
		},
		softDelete: func(_ context.Context, _ string) error {
			if deleted {
				return domain.ErrUserNotFound
			}
			deleted = true
			return nil
		},
	}
	uc := usecase.NewUserUsecase(repo)

	if err := uc.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("first delete: unexpected error: %v", err)
	}

	err := uc.Delete(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("second delete: want ErrUserNotFound, got %v", err)
	}
}

func TestUserListPage_PropagatesTotals(t *testing.T) {
	repo := &fakeUserRepo{
		listPage: func(_ context.Context, skip, limit int) ([]*domain.User, int, error) {
			return []*domain.User{testUser}, 7, nil
		},
	}

	users, total, err := usecase.NewUserUsecase(repo).ListPage(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || total != 7 {
		t.Errorf("len = %d, total = %d, want 1 and 7", len(users), total)
	}
}
