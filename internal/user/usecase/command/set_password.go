package command

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/auth"
)

// SetPasswordCommand represents the command to change the caller's password
type SetPasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

// SetPasswordHandler handles password changes
type SetPasswordHandler struct {
	repo domain.UserRepository
}

// NewSetPasswordHandler creates a new set password handler
func NewSetPasswordHandler(repo domain.UserRepository) *SetPasswordHandler {
	return &SetPasswordHandler{repo: repo}
}

// Handle executes the set password command
func (h *SetPasswordHandler) Handle(cmd SetPasswordCommand) error {
	if len(cmd.NewPassword) < 6 {
		return apperrors.Validationf("new password must be at least 6 characters")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(cmd.CurrentPassword, user.Password) {
		return apperrors.Validationf("current password is incorrect")
	}

	hashed, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	return h.repo.Update(user)
}
