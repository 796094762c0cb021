package command

import (
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// DeleteRecipeCommand represents the command to delete a recipe
type DeleteRecipeCommand struct {
	RecipeID uint
}

// DeleteRecipeHandler handles recipe deletion; join rows and favorite/cart
// memberships cascade with the recipe row.
type DeleteRecipeHandler struct {
	recipes domain.RecipeRepository
	images  *imagestore.Store
}

// NewDeleteRecipeHandler creates a new delete recipe handler
func NewDeleteRecipeHandler(recipes domain.RecipeRepository, images *imagestore.Store) *DeleteRecipeHandler {
	return &DeleteRecipeHandler{recipes: recipes, images: images}
}

// Handle executes the delete recipe command
func (h *DeleteRecipeHandler) Handle(cmd DeleteRecipeCommand) error {
	recipe, err := h.recipes.FindByID(cmd.RecipeID)
	if err != nil {
		return err
	}

	if err := h.recipes.Delete(cmd.RecipeID); err != nil {
		return err
	}

	_ = h.images.Remove(recipe.Image)
	return nil
}
