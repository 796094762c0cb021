package command

import (
	"github.com/tastebook/tastebook/internal/membership/domain"
)

// RemoveMembershipCommand unlinks the user from a target
type RemoveMembershipCommand struct {
	UserID   uint
	TargetID uint
	Kind     domain.Kind
}

// RemoveMembershipHandler handles membership removal for every kind
type RemoveMembershipHandler struct {
	repo domain.Repository
}

// NewRemoveMembershipHandler creates a new remove membership handler
func NewRemoveMembershipHandler(repo domain.Repository) *RemoveMembershipHandler {
	return &RemoveMembershipHandler{repo: repo}
}

// Handle executes the remove membership command; an absent pair surfaces
// as a not-found error from the repository.
func (h *RemoveMembershipHandler) Handle(cmd RemoveMembershipCommand) error {
	return h.repo.Remove(cmd.UserID, cmd.TargetID, cmd.Kind)
}
