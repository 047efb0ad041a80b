package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sample-registry/internal/domain"
	"sample-registry/internal/httperr"
	"sample-registry/internal/repository"
)

// CreateUserInput carries the fields accepted by user creation. All of them
// are required.
type CreateUserInput struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Rut      string `json:"rut"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Password string `json:"password"`
}

// UserService describes user lifecycle operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRol(ctx context.Context, rol string) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := requireFields(map[string]string{
		"name":      input.Name,
		"last_name": input.LastName,
		"rut":       input.Rut,
		"email":     input.Email,
		"rol":       input.Rol,
		"password":  input.Password,
	}); err != nil {
		return nil, err
	}

	// never persisted in the clear
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Rut:          input.Rut,
		Email:        input.Email,
		Rol:          input.Rol,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *userService) ListByRol(ctx context.Context, rol string) ([]domain.User, error) {
	users, err := s.users.ListByRol(ctx, rol)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		// an empty role is a miss, not an empty list
		return nil, repository.ErrNotFound
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// requireFields rejects the request when any required field is missing or
// blank, naming the first offender in field order.
func requireFields(fields map[string]string) error {
	order := []string{
		"name", "last_name", "rut", "email", "rol", "password",
		"project_name", "ubication", "ubication_image", "area",
		"specimen", "quality_specimen", "image_specimen", "aditional_comments",
	}
	for _, name := range order {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			return httperr.Ef(http.StatusBadRequest, "El campo '%s' es requerido", name)
		}
	}
	return nil
}
