package query

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/view"
)

// ListRecipesQuery lists recipes with exact-match filters, personalized to
// the viewer. The favorited/in-cart filters are keyed on the viewer and
// reduce to "no results" for anonymous callers asking for their own sets.
type ListRecipesQuery struct {
	ViewerID      uint
	TagSlugs      []string
	AuthorID      uint
	OnlyFavorited bool
	OnlyInCart    bool
}

// ListRecipesHandler handles the list recipes query
type ListRecipesHandler struct {
	repo      domain.RecipeRepository
	assembler *view.Assembler
}

// NewListRecipesHandler creates a new list recipes handler
func NewListRecipesHandler(repo domain.RecipeRepository, assembler *view.Assembler) *ListRecipesHandler {
	return &ListRecipesHandler{repo: repo, assembler: assembler}
}

// Handle executes the list recipes query
func (h *ListRecipesHandler) Handle(q ListRecipesQuery) ([]view.RecipeView, error) {
	filter := domain.RecipeFilter{
		TagSlugs: q.TagSlugs,
		AuthorID: q.AuthorID,
	}
	if q.OnlyFavorited {
		if q.ViewerID == 0 {
			return []view.RecipeView{}, nil
		}
		filter.FavoritedBy = q.ViewerID
	}
	if q.OnlyInCart {
		if q.ViewerID == 0 {
			return []view.RecipeView{}, nil
		}
		filter.InCartOf = q.ViewerID
	}

	recipes, err := h.repo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return h.assembler.Recipes(recipes, q.ViewerID)
}
