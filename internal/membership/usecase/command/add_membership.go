package command

import (
	"github.com/tastebook/tastebook/internal/membership/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// AddMembershipCommand links the user to a target (recipe or author)
type AddMembershipCommand struct {
	UserID   uint
	TargetID uint
	Kind     domain.Kind
}

// AddMembershipHandler handles membership creation for every kind
type AddMembershipHandler struct {
	repo domain.Repository
}

// NewAddMembershipHandler creates a new add membership handler
func NewAddMembershipHandler(repo domain.Repository) *AddMembershipHandler {
	return &AddMembershipHandler{repo: repo}
}

// Handle executes the add membership command. Self-subscription is rejected
// before the existence check; a present pair is a conflict, not a silent
// no-op.
func (h *AddMembershipHandler) Handle(cmd AddMembershipCommand) error {
	if cmd.Kind == domain.KindSubscription && cmd.UserID == cmd.TargetID {
		return apperrors.Validationf("cannot subscribe to yourself")
	}

	exists, err := h.repo.Exists(cmd.UserID, cmd.TargetID, cmd.Kind)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Conflictf("%s for target %d", cmd.Kind, cmd.TargetID)
	}

	return h.repo.Add(&domain.Membership{
		UserID:   cmd.UserID,
		TargetID: cmd.TargetID,
		Kind:     cmd.Kind,
	})
}
