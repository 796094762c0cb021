package command

import (
	"fmt"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// UpdateRecipeCommand represents the command to update a recipe. Ingredient
// and tag sets must always be resupplied in full; an omitted list means
// "replace with empty" and is rejected by validation. An empty Image keeps
// the current one.
type UpdateRecipeCommand struct {
	RecipeID    uint
	Name        string
	Text        string
	CookingTime int
	Image       string
	Tags        []uint
	Ingredients []IngredientAmount
}

// UpdateRecipeHandler validates and applies recipe updates
type UpdateRecipeHandler struct {
	recipes     domain.RecipeRepository
	ingredients catalogdomain.IngredientRepository
	tags        catalogdomain.TagRepository
	images      *imagestore.Store
}

// NewUpdateRecipeHandler creates a new update recipe handler
func NewUpdateRecipeHandler(
	recipes domain.RecipeRepository,
	ingredients catalogdomain.IngredientRepository,
	tags catalogdomain.TagRepository,
	images *imagestore.Store,
) *UpdateRecipeHandler {
	return &UpdateRecipeHandler{recipes: recipes, ingredients: ingredients, tags: tags, images: images}
}

// Handle executes the update recipe command. Scalar fields are replaced
// wholesale and the ingredient/tag sets are swapped atomically; the fresh
// read aggregate is returned. The caller-is-author precondition is
// enforced at the delivery boundary.
func (h *UpdateRecipeHandler) Handle(cmd UpdateRecipeCommand) (*domain.Recipe, error) {
	if err := validateScalars(cmd.Name, cmd.Text, cmd.CookingTime); err != nil {
		return nil, err
	}
	rows, err := validateIngredients(cmd.Ingredients, h.ingredients)
	if err != nil {
		return nil, err
	}
	tags, err := validateTags(cmd.Tags, h.tags)
	if err != nil {
		return nil, err
	}

	existing, err := h.recipes.FindByID(cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	imagePath := existing.Image
	var oldImage string
	if cmd.Image != "" {
		imagePath, err = h.images.Save(cmd.Image, "recipes/images")
		if err != nil {
			return nil, apperrors.Validationf("invalid image: %v", err)
		}
		oldImage = existing.Image
	}

	updated := &domain.Recipe{
		ID:          cmd.RecipeID,
		Name:        cmd.Name,
		Text:        cmd.Text,
		CookingTime: cmd.CookingTime,
		Image:       imagePath,
		AuthorID:    existing.AuthorID,
		Ingredients: rows,
		Tags:        tags,
	}

	if err := h.recipes.Update(updated); err != nil {
		if cmd.Image != "" {
			_ = h.images.Remove(imagePath)
		}
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if oldImage != "" && oldImage != imagePath {
		_ = h.images.Remove(oldImage)
	}

	return h.recipes.FindByID(cmd.RecipeID)
}
