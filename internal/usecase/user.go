package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

// UserUsecase covers the user-management surface: listing, profile
// updates (including password changes) and account soft-deletion.
type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *UserUsecase) ListPage(ctx context.Context, skip, limit int) ([]*domain.User, int, error) {
	users, total, err := u.users.ListPage(ctx, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (u *UserUsecase) Update(ctx context.Context, id string, input repository.UpdateUserInput) (*domain.User, error) {
	if _, err := u.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := u.users.Update(ctx, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (u *UserUsecase) UpdatePassword(ctx context.Context, id, password string) error {
	if password == "" {
		return domain.ErrMissingFields
	}
	if err := u.users.UpdatePassword(ctx, id, password); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.GetByID(ctx, id); err != nil {
		return err
	}
	if err := u.users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
