package repository

import (
	"fmt"

	"gorm.io/gorm"

	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// Create persists the recipe row, its ingredient join rows and its tag
// links in one transaction. Catalog rows are never touched.
func (r *GormRecipeRepository) Create(recipe *domain.Recipe) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Tags.*", "Ingredients.Ingredient").Create(recipe).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update replaces the scalar fields wholesale and swaps the full
// ingredient and tag sets in one transaction. Readers see either the old
// or the new set, never a partial one.
func (r *GormRecipeRepository) Update(recipe *domain.Recipe) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
		}
		if err := tx.Model(&domain.Recipe{ID: recipe.ID}).Updates(updates).Error; err != nil {
			return err
		}

		// Delete-then-recreate: no partial-update semantics for join rows.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		rows := make([]domain.RecipeIngredient, 0, len(recipe.Ingredients))
		for _, ing := range recipe.Ingredients {
			rows = append(rows, domain.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ing.IngredientID,
				Amount:       ing.Amount,
			})
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		return tx.Model(&domain.Recipe{ID: recipe.ID}).
			Omit("Tags.*").
			Association("Tags").
			Replace(recipe.Tags)
	})
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return nil
}

// Delete removes the recipe and cascades its join rows, tag links and any
// favorite/cart membership rows referencing it.
func (r *GormRecipeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe tags: %w", err)
		}
		err := tx.Exec(
			"DELETE FROM memberships WHERE target_id = ? AND kind IN (?, ?)",
			id, membershipdomain.KindFavorite, membershipdomain.KindShoppingCart,
		).Error
		if err != nil {
			return fmt.Errorf("failed to delete recipe memberships: %w", err)
		}

		result := tx.Delete(&domain.Recipe{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("recipe %d", id)
		}
		return nil
	})
}

// FindByID retrieves the full aggregate: author, tags, ingredient join
// rows with their catalog entries.
func (r *GormRecipeRepository) FindByID(id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFoundf("recipe %d", id)
		}
		return nil, fmt.Errorf("failed to find recipe: %w", err)
	}
	return &recipe, nil
}

// FindAll retrieves recipes matching the filter, ordered by id
func (r *GormRecipeRepository) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	query := r.db.Model(&domain.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id ASC")

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.FavoritedBy != 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM memberships m WHERE m.target_id = recipes.id AND m.user_id = ? AND m.kind = ?)",
			filter.FavoritedBy, membershipdomain.KindFavorite,
		)
	}
	if filter.InCartOf != 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM memberships m WHERE m.target_id = recipes.id AND m.user_id = ? AND m.kind = ?)",
			filter.InCartOf, membershipdomain.KindShoppingCart,
		)
	}

	var recipes []domain.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

// FindByAuthor retrieves the author's recipes, newest first, optionally
// truncated to limit
func (r *GormRecipeRepository) FindByAuthor(authorID uint, limit int) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	query := r.db.Where("author_id = ?", authorID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes by author: %w", err)
	}
	return recipes, nil
}

// CountByAuthor returns how many recipes the author has published
func (r *GormRecipeRepository) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// CartIngredientTotals sums ingredient amounts across every recipe in the
// user's shopping cart, grouped by (name, unit) and ordered by name.
func (r *GormRecipeRepository) CartIngredientTotals(userID uint) ([]domain.IngredientTotal, error) {
	var totals []domain.IngredientTotal
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN memberships ON memberships.target_id = recipe_ingredients.recipe_id AND memberships.kind = ?", membershipdomain.KindShoppingCart).
		Where("memberships.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list: %w", err)
	}
	return totals, nil
}

// AutoMigrate runs database migrations for the recipe aggregate
func (r *GormRecipeRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Recipe{}, &domain.RecipeIngredient{})
}
