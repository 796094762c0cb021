package command

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterUserHandler handles user registration
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, apperrors.Validationf("username is required")
	}
	if cmd.Email == "" {
		return nil, apperrors.Validationf("email is required")
	}
	if cmd.Password == "" {
		return nil, apperrors.Validationf("password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, apperrors.Validationf("password must be at least 6 characters")
	}
	if cmd.FirstName == "" {
		return nil, apperrors.Validationf("first name is required")
	}
	if cmd.LastName == "" {
		return nil, apperrors.Validationf("last name is required")
	}

	// The unique indexes are the final arbiter; these checks only shape
	// the error message.
	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, apperrors.Conflictf("username %q", cmd.Username)
	}
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, apperrors.Conflictf("email %q", cmd.Email)
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  hashed,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
