package query

import (
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/view"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// GetRecipeQuery asks for one recipe personalized to the viewer; a zero
// ViewerID means anonymous.
type GetRecipeQuery struct {
	RecipeID uint
	ViewerID uint
}

// GetRecipeHandler handles the get recipe query
type GetRecipeHandler struct {
	repo      domain.RecipeRepository
	assembler *view.Assembler
}

// NewGetRecipeHandler creates a new get recipe handler
func NewGetRecipeHandler(repo domain.RecipeRepository, assembler *view.Assembler) *GetRecipeHandler {
	return &GetRecipeHandler{repo: repo, assembler: assembler}
}

// Handle executes the get recipe query
func (h *GetRecipeHandler) Handle(q GetRecipeQuery) (*view.RecipeView, error) {
	if q.RecipeID == 0 {
		return nil, apperrors.NotFoundf("recipe %d", q.RecipeID)
	}

	recipe, err := h.repo.FindByID(q.RecipeID)
	if err != nil {
		return nil, err
	}

	return h.assembler.Recipe(recipe, q.ViewerID)
}
