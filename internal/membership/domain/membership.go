package domain

import (
	"time"
)

// Kind discriminates what a membership row links a user to. Favorite and
// shopping cart target a recipe; subscription targets another user.
type Kind string

const (
	KindFavorite     Kind = "favorite"
	KindShoppingCart Kind = "shopping_cart"
	KindSubscription Kind = "subscription"
)

// Membership is a uniqueness-constrained (user, target, kind) link with no
// payload beyond the pair itself. Rows are created and deleted, never
// mutated in place.
type Membership struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_membership_user_target_kind"`
	TargetID  uint      `json:"target_id" gorm:"not null;uniqueIndex:idx_membership_user_target_kind"`
	Kind      Kind      `json:"kind" gorm:"size:32;not null;uniqueIndex:idx_membership_user_target_kind"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name
func (Membership) TableName() string {
	return "memberships"
}

// Repository defines the contract for membership data access. The unique
// index on (user_id, target_id, kind) is the final arbiter for concurrent
// adds; Exists checks are an optimization, not the safety mechanism.
type Repository interface {
	Add(m *Membership) error
	Remove(userID, targetID uint, kind Kind) error
	Exists(userID, targetID uint, kind Kind) (bool, error)
	TargetIDs(userID uint, kind Kind) ([]uint, error)
}
