package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sample-registry/internal/domain"
	"sample-registry/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	rut TEXT NOT NULL,
	email TEXT NOT NULL,
	rol TEXT NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO users (name, last_name, rut, email, rol, password, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		user.Name,
		user.LastName,
		user.Rut,
		user.Email,
		user.Rol,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	return id, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, last_name, rut, email, rol, password, created_at, updated_at
FROM users
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, last_name, rut, email, rol, password, created_at, updated_at
FROM users
WHERE email = $1
ORDER BY id ASC
LIMIT 1`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) ListByRol(ctx context.Context, rol string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, last_name, rut, email, rol, password, created_at, updated_at
FROM users
WHERE rol = $1
ORDER BY id ASC`,
		rol,
	)
	if err != nil {
		return nil, fmt.Errorf("query users by rol: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.LastName,
		&user.Rut,
		&user.Email,
		&user.Rol,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
