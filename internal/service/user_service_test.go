package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"sample-registry/internal/domain"
	"sample-registry/internal/httperr"
	"sample-registry/internal/repository"
)

type fakeUserRepo struct {
	users  []domain.User
	nextID int64
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	f.nextID++
	user.ID = f.nextID
	f.users = append(f.users, *user)
	return user.ID, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ListByRol(ctx context.Context, rol string) ([]domain.User, error) {
	var matched []domain.User
	for _, u := range f.users {
		if u.Rol == rol {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func validUserInput() CreateUserInput {
	return CreateUserInput{
		Name:     "Ana",
		LastName: "Li",
		Rut:      "1-9",
		Email:    "a@x.com",
		Rol:      "admin",
		Password: "secreto1",
	}
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.Create(context.Background(), validUserInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.PasswordHash == "secreto1" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secreto1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestUserServiceCreateRejectsMissingFields(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	cases := []struct {
		field  string
		mutate func(*CreateUserInput)
	}{
		{"name", func(in *CreateUserInput) { in.Name = "" }},
		{"last_name", func(in *CreateUserInput) { in.LastName = "" }},
		{"rut", func(in *CreateUserInput) { in.Rut = "" }},
		{"email", func(in *CreateUserInput) { in.Email = "" }},
		{"rol", func(in *CreateUserInput) { in.Rol = "" }},
		{"password", func(in *CreateUserInput) { in.Password = "  " }},
	}

	for _, tc := range cases {
		input := validUserInput()
		tc.mutate(&input)

		_, err := svc.Create(context.Background(), input)
		var apiErr *httperr.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("field %s: expected httperr.Error, got %v", tc.field, err)
		}
		if apiErr.Status != http.StatusBadRequest {
			t.Fatalf("field %s: expected 400, got %d", tc.field, apiErr.Status)
		}
	}
}

func TestUserServiceListByRolEmptyIsNotFound(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	input := validUserInput()
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create: %v", err)
	}

	// other roles having users must not rescue the miss
	if _, err := svc.ListByRol(context.Background(), "tecnico"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty rol, got %v", err)
	}

	users, err := svc.ListByRol(context.Background(), "admin")
	if err != nil {
		t.Fatalf("list by rol: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(users))
	}
}

func TestUserServiceDeletePassesThroughNotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
