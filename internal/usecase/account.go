package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedrohsilva/tarefas-api/internal/auth"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/metrics"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

// AccountUsecase orchestrates registration, login, token refresh and
// "who am I" over the user repository and the token issuer.
type AccountUsecase struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	hasher auth.PasswordHasher
}

func NewAccountUsecase(users repository.UserRepository, tokens *auth.TokenIssuer, hasher auth.PasswordHasher) *AccountUsecase {
	return &AccountUsecase{users: users, tokens: tokens, hasher: hasher}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (u *AccountUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	// Pre-check gives a clean conflict error; the partial unique index
	// still backstops concurrent registrations of the same address.
	if _, err := u.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	created, err := u.users.Add(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("add user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	return created, nil
}

// Login returns a signed token keyed on the user's email. An unknown
// email and a wrong password are indistinguishable to the caller.
func (u *AccountUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	return token, nil
}

// Refresh re-issues a token for an already-authenticated identity.
// The password is never re-checked here.
func (u *AccountUsecase) Refresh(ctx context.Context, current *domain.User) (string, error) {
	token, err := u.tokens.Issue(current.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (u *AccountUsecase) Me(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
