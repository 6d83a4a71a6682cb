package repository

import (
	"context"

	"github.com/pedrohsilva/tarefas-api/internal/domain"
)

// UpdateUserInput carries a partial user update. Nil fields are left
// untouched. Password is plaintext here; the repository hashes it
// before storage and never returns it.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Usecases depend on the interface, not the postgres implementation,
// so tests can pass fakes.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Add(ctx context.Context, name, email, password string) (*domain.User, error)
	ListPage(ctx context.Context, skip, limit int) ([]*domain.User, int, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, password string) error
	SoftDelete(ctx context.Context, id string) error
}
