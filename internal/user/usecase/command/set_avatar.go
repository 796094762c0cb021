package command

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// SetAvatarCommand replaces the user's avatar with a base64 payload
type SetAvatarCommand struct {
	UserID uint
	Avatar string // base64 data URI
}

// SetAvatarHandler handles avatar upload
type SetAvatarHandler struct {
	repo   domain.UserRepository
	images *imagestore.Store
}

// NewSetAvatarHandler creates a new set avatar handler
func NewSetAvatarHandler(repo domain.UserRepository, images *imagestore.Store) *SetAvatarHandler {
	return &SetAvatarHandler{repo: repo, images: images}
}

// Handle executes the set avatar command and returns the stored path
func (h *SetAvatarHandler) Handle(cmd SetAvatarCommand) (string, error) {
	if cmd.Avatar == "" {
		return "", apperrors.Validationf("avatar payload is required")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return "", err
	}

	path, err := h.images.Save(cmd.Avatar, "users")
	if err != nil {
		return "", apperrors.Validationf("invalid avatar image: %v", err)
	}

	old := user.Avatar
	user.Avatar = path
	if err := h.repo.Update(user); err != nil {
		return "", fmt.Errorf("failed to update avatar: %w", err)
	}

	if old != "" {
		_ = h.images.Remove(old)
	}
	return path, nil
}

// DeleteAvatarCommand removes the user's avatar
type DeleteAvatarCommand struct {
	UserID uint
}

// DeleteAvatarHandler handles avatar removal
type DeleteAvatarHandler struct {
	repo   domain.UserRepository
	images *imagestore.Store
}

// NewDeleteAvatarHandler creates a new delete avatar handler
func NewDeleteAvatarHandler(repo domain.UserRepository, images *imagestore.Store) *DeleteAvatarHandler {
	return &DeleteAvatarHandler{repo: repo, images: images}
}

// Handle executes the delete avatar command
func (h *DeleteAvatarHandler) Handle(cmd DeleteAvatarCommand) error {
	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return err
	}

	old := user.Avatar
	user.Avatar = ""
	if err := h.repo.Update(user); err != nil {
		return fmt.Errorf("failed to remove avatar: %w", err)
	}

	if old != "" {
		_ = h.images.Remove(old)
	}
	return nil
}
