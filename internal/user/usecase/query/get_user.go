package query

import (
	"github.com/tastebook/tastebook/internal/recipe/view"
	"github.com/tastebook/tastebook/internal/user/domain"
)

// GetUserQuery asks for one public profile as seen by the viewer
type GetUserQuery struct {
	UserID   uint
	ViewerID uint
}

// GetUserHandler handles the get user query
type GetUserHandler struct {
	users     domain.UserRepository
	assembler *view.Assembler
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(users domain.UserRepository, assembler *view.Assembler) *GetUserHandler {
	return &GetUserHandler{users: users, assembler: assembler}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(q GetUserQuery) (*view.AuthorView, error) {
	user, err := h.users.FindByID(q.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := h.assembler.Author(user, q.ViewerID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
