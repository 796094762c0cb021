package command

import (
	"testing"

	"github.com/tastebook/tastebook/internal/membership/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

type fakeRepo struct {
	entries map[[2]uint]map[domain.Kind]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[[2]uint]map[domain.Kind]bool)}
}

func (f *fakeRepo) Add(m *domain.Membership) error {
	key := [2]uint{m.UserID, m.TargetID}
	if f.entries[key] == nil {
		f.entries[key] = make(map[domain.Kind]bool)
	}
	if f.entries[key][m.Kind] {
		return apperrors.Conflictf("%s for target %d", m.Kind, m.TargetID)
	}
	f.entries[key][m.Kind] = true
	return nil
}

func (f *fakeRepo) Remove(userID, targetID uint, kind domain.Kind) error {
	key := [2]uint{userID, targetID}
	if !f.entries[key][kind] {
		return apperrors.NotFoundf("%s for target %d", kind, targetID)
	}
	delete(f.entries[key], kind)
	return nil
}

func (f *fakeRepo) Exists(userID, targetID uint, kind domain.Kind) (bool, error) {
	return f.entries[[2]uint{userID, targetID}][kind], nil
}

func (f *fakeRepo) TargetIDs(userID uint, kind domain.Kind) ([]uint, error) {
	var out []uint
	for key, kinds := range f.entries {
		if key[0] == userID && kinds[kind] {
			out = append(out, key[1])
		}
	}
	return out, nil
}

func TestAddMembership(t *testing.T) {
	repo := newFakeRepo()
	handler := NewAddMembershipHandler(repo)

	cmd := AddMembershipCommand{UserID: 1, TargetID: 5, Kind: domain.KindFavorite}
	if err := handler.Handle(cmd); err != nil {
		t.Fatalf("first add: %v", err)
	}

	exists, _ := repo.Exists(1, 5, domain.KindFavorite)
	if !exists {
		t.Fatal("membership not stored")
	}
}

func TestAddMembershipTwiceConflicts(t *testing.T) {
	repo := newFakeRepo()
	handler := NewAddMembershipHandler(repo)

	cmd := AddMembershipCommand{UserID: 1, TargetID: 5, Kind: domain.KindShoppingCart}
	if err := handler.Handle(cmd); err != nil {
		t.Fatalf("first add: %v", err)
	}

	err := handler.Handle(cmd)
	if !apperrors.IsConflict(err) {
		t.Fatalf("second add should conflict, got %v", err)
	}
}

func TestSameTargetDifferentKinds(t *testing.T) {
	repo := newFakeRepo()
	handler := NewAddMembershipHandler(repo)

	// favoriting a recipe does not block adding it to the cart
	if err := handler.Handle(AddMembershipCommand{UserID: 1, TargetID: 5, Kind: domain.KindFavorite}); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if err := handler.Handle(AddMembershipCommand{UserID: 1, TargetID: 5, Kind: domain.KindShoppingCart}); err != nil {
		t.Fatalf("cart: %v", err)
	}
}

func TestSelfSubscriptionRejected(t *testing.T) {
	repo := newFakeRepo()
	handler := NewAddMembershipHandler(repo)

	err := handler.Handle(AddMembershipCommand{UserID: 3, TargetID: 3, Kind: domain.KindSubscription})
	if !apperrors.IsValidation(err) {
		t.Fatalf("self-subscription should be a validation error, got %v", err)
	}

	// same ids are fine for recipe kinds, only subscriptions forbid it
	if err := handler.Handle(AddMembershipCommand{UserID: 3, TargetID: 3, Kind: domain.KindFavorite}); err != nil {
		t.Fatalf("favorite with matching ids: %v", err)
	}
}

func TestRemoveMembership(t *testing.T) {
	repo := newFakeRepo()
	add := NewAddMembershipHandler(repo)
	remove := NewRemoveMembershipHandler(repo)

	cmd := AddMembershipCommand{UserID: 2, TargetID: 9, Kind: domain.KindSubscription}
	if err := add.Handle(cmd); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := remove.Handle(RemoveMembershipCommand{UserID: 2, TargetID: 9, Kind: domain.KindSubscription}); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err := remove.Handle(RemoveMembershipCommand{UserID: 2, TargetID: 9, Kind: domain.KindSubscription})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("second remove should be not found, got %v", err)
	}
}
