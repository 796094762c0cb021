package command

import (
	"fmt"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// CreateRecipeCommand represents the command to create a recipe. AuthorID
// always comes from the authenticated caller, never from the payload.
type CreateRecipeCommand struct {
	AuthorID    uint
	Name        string
	Text        string
	CookingTime int
	Image       string // base64 payload
	Tags        []uint
	Ingredients []IngredientAmount
}

// CreateRecipeHandler validates and applies recipe creation
type CreateRecipeHandler struct {
	recipes     domain.RecipeRepository
	ingredients catalogdomain.IngredientRepository
	tags        catalogdomain.TagRepository
	images      *imagestore.Store
}

// NewCreateRecipeHandler creates a new create recipe handler
func NewCreateRecipeHandler(
	recipes domain.RecipeRepository,
	ingredients catalogdomain.IngredientRepository,
	tags catalogdomain.TagRepository,
	images *imagestore.Store,
) *CreateRecipeHandler {
	return &CreateRecipeHandler{recipes: recipes, ingredients: ingredients, tags: tags, images: images}
}

// Handle executes the create recipe command. All validation happens before
// any persistence; the whole aggregate is written in one transaction and
// the fresh read aggregate is returned.
func (h *CreateRecipeHandler) Handle(cmd CreateRecipeCommand) (*domain.Recipe, error) {
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
	if cmd.Image == "" {
		return nil, apperrors.Validationf("image is required")
	}

	imagePath, err := h.images.Save(cmd.Image, "recipes/images")
	if err != nil {
		return nil, apperrors.Validationf("invalid image: %v", err)
	}

	recipe := &domain.Recipe{
		Name:        cmd.Name,
		Text:        cmd.Text,
		CookingTime: cmd.CookingTime,
		Image:       imagePath,
		AuthorID:    cmd.AuthorID,
		Ingredients: rows,
		Tags:        tags,
	}

	if err := h.recipes.Create(recipe); err != nil {
		_ = h.images.Remove(imagePath)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return h.recipes.FindByID(recipe.ID)
}
