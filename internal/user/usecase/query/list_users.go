package query

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/recipe/view"
	"github.com/tastebook/tastebook/internal/user/domain"
)

// ListUsersQuery lists public profiles in registration order
type ListUsersQuery struct {
	ViewerID uint
	Limit    int
	Offset   int
}

// ListUsersHandler handles the list users query
type ListUsersHandler struct {
	users     domain.UserRepository
	assembler *view.Assembler
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(users domain.UserRepository, assembler *view.Assembler) *ListUsersHandler {
	return &ListUsersHandler{users: users, assembler: assembler}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]view.AuthorView, error) {
	users, err := h.users.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]view.AuthorView, 0, len(users))
	for i := range users {
		p, err := h.assembler.Author(&users[i], q.ViewerID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
