package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"sample-registry/internal/domain"
	"sample-registry/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	repo := NewUserRepository(openTestDB(t))
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return repo
}

func testUser(email, rol string) *domain.User {
	return &domain.User{
		Name:         "Ana",
		LastName:     "Li",
		Rut:          "1-9",
		Email:        email,
		Rol:          rol,
		PasswordHash: "$2a$10$fakehash",
	}
}

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := testUser("a@x.com", "admin")
	id, err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}
	if user.ID != id {
		t.Fatalf("expected user.ID to be set to %d, got %d", id, user.ID)
	}
}

func TestUserRepositoryListOrder(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	for _, email := range []string{"first@x.com", "second@x.com", "third@x.com"} {
		if _, err := repo.Create(ctx, testUser(email, "tecnico")); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i].ID <= users[i-1].ID {
			t.Fatalf("expected ascending id order, got %d before %d", users[i-1].ID, users[i].ID)
		}
	}
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, testUser("a@x.com", "admin")); err != nil {
		t.Fatalf("create user: %v", err)
	}

	user, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if user.Email != "a@x.com" || user.Rol != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "" {
		t.Fatal("expected password hash to be loaded")
	}

	if _, err := repo.GetByEmail(ctx, "missing@x.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepositoryGetByEmailFirstMatchWins(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	first := testUser("dup@x.com", "admin")
	second := testUser("dup@x.com", "tecnico")
	firstID, err := repo.Create(ctx, first)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "dup@x.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != firstID {
		t.Fatalf("expected first row %d, got %d", firstID, got.ID)
	}
}

func TestUserRepositoryListByRol(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, testUser("a@x.com", "admin")); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.Create(ctx, testUser("b@x.com", "tecnico")); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := repo.Create(ctx, testUser("c@x.com", "tecnico")); err != nil {
		t.Fatalf("create user: %v", err)
	}

	users, err := repo.ListByRol(ctx, "tecnico")
	if err != nil {
		t.Fatalf("list by rol: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 tecnico users, got %d", len(users))
	}

	empty, err := repo.ListByRol(ctx, "geologo")
	if err != nil {
		t.Fatalf("list by rol: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no geologo users, got %d", len(empty))
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, testUser("a@x.com", "admin"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := repo.Delete(ctx, 9999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
