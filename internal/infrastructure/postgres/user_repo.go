package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pedrohsilva/tarefas-api/internal/auth"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
	"github.com/pedrohsilva/tarefas-api/internal/repository"
)

const userColumns = `id, name, email, password_hash, active, deleted, created_at, updated_at`

type UserRepository struct {
	pool   *pgxpool.Pool
	hasher auth.PasswordHasher
}

func NewUserRepository(pool *pgxpool.Pool, hasher auth.PasswordHasher) *UserRepository {
	return &UserRepository{pool: pool, hasher: hasher}
}

// FindByEmail looks up a non-deleted user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT deleted AND lower(email) = lower($1)`

	row := r.pool.QueryRow(ctx, query, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT deleted AND id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanUser(row)
}

// Add hashes the plaintext password and inserts the user. A partial
// unique index on lower(email) WHERE NOT deleted enforces uniqueness
// among live rows only; violations surface as ErrEmailTaken.
func (r *UserRepository) Add(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query, name, email, hash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// ListPage returns non-deleted users ordered by creation time, most
// recent first, plus the total count over the same predicate.
func (r *UserRepository) ListPage(ctx context.Context, skip, limit int) ([]*domain.User, int, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE NOT deleted
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE NOT deleted`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// Update applies a partial update. When the email changes, uniqueness
// is re-checked against live rows excluding the record itself, in the
// same transaction as the write.
func (r *UserRepository) Update(ctx context.Context, id string, input repository.UpdateUserInput) (*domain.User, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if input.Email != nil {
		var taken bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM users
				WHERE NOT deleted AND lower(email) = lower($1) AND id <> $2
			)`, *input.Email, id).Scan(&taken)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
	}

	set := []string{"updated_at = NOW()"}
	args := []any{id}

	if input.Name != nil {
		args = append(args, *input.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if input.Email != nil {
		args = append(args, *input.Email)
		set = append(set, fmt.Sprintf("email = $%d", len(args)))
	}
	if input.Password != nil {
		hash, err := r.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		args = append(args, hash)
		set = append(set, fmt.Sprintf("password_hash = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE NOT deleted AND id = $1
		RETURNING `+userColumns,
		strings.Join(set, ", "))

	row := tx.QueryRow(ctx, query, args...)
	updated, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW()
		WHERE NOT deleted AND id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SoftDelete marks the row deleted; it is never physically removed.
func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET deleted = TRUE, active = FALSE, updated_at = NOW()
		WHERE NOT deleted AND id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Active, &u.Deleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
