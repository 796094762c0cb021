package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tastebook/tastebook/internal/membership/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// GormMembershipRepository implements the membership Repository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GORM membership repository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Add inserts a membership row. A violation of the (user, target, kind)
// unique index surfaces as a conflict error.
func (r *GormMembershipRepository) Add(m *domain.Membership) error {
	if err := r.db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("%s for target %d", m.Kind, m.TargetID)
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// Remove deletes the membership row for (user, target, kind); a missing
// row is a not-found error.
func (r *GormMembershipRepository) Remove(userID, targetID uint, kind domain.Kind) error {
	result := r.db.
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Delete(&domain.Membership{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("%s for target %d", kind, targetID)
	}
	return nil
}

// Exists reports whether the (user, target, kind) row is present
func (r *GormMembershipRepository) Exists(userID, targetID uint, kind domain.Kind) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Membership{}).
		Where("user_id = ? AND target_id = ? AND kind = ?", userID, targetID, kind).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}

// TargetIDs returns every target the user is linked to for the given kind,
// ordered by insertion
func (r *GormMembershipRepository) TargetIDs(userID uint, kind domain.Kind) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&domain.Membership{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("id ASC").
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list membership targets: %w", err)
	}
	return ids, nil
}

// AutoMigrate runs database migrations
func (r *GormMembershipRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Membership{})
}
