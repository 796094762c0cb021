package command

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/pkg/auth"
)

// LoginUserCommand represents the command to authenticate a user by email
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token string       `json:"auth_token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle executes the login command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	user, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(cmd.Password, user.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{Token: token, User: user}, nil
}
