package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// GormIngredientRepository implements IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GORM ingredient repository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID retrieves an ingredient by ID
func (r *GormIngredientRepository) FindByID(id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf("ingredient %d", id)
		}
		return nil, fmt.Errorf("failed to find ingredient: %w", err)
	}
	return &ingredient, nil
}

// FindByIDs retrieves every ingredient whose id is in ids
func (r *GormIngredientRepository) FindByIDs(ids []uint) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to find ingredients: %w", err)
	}
	return ingredients, nil
}

// FindAll retrieves all ingredients, optionally filtered by a name prefix
func (r *GormIngredientRepository) FindAll(namePrefix string) ([]domain.Ingredient, error) {
	var ingredients []domain.Ingredient
	query := r.db.Order("id ASC")
	if namePrefix != "" {
		query = query.Where("name ILIKE ?", namePrefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to find ingredients: %w", err)
	}
	return ingredients, nil
}

// AutoMigrate runs database migrations for the catalog tables
func (r *GormIngredientRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Ingredient{}, &domain.Tag{})
}

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM tag repository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID retrieves a tag by ID
func (r *GormTagRepository) FindByID(id uint) (*domain.Tag, error) {
	var tag domain.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf("tag %d", id)
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return &tag, nil
}

// FindByIDs retrieves every tag whose id is in ids
func (r *GormTagRepository) FindByIDs(ids []uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	return tags, nil
}

// FindAll retrieves all tags ordered by name
func (r *GormTagRepository) FindAll() ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	return tags, nil
}
