package query

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/catalog/domain"
)

// ListIngredientsQuery represents the query to list ingredients
type ListIngredientsQuery struct {
	Name string // optional name-prefix filter
}

// ListIngredientsHandler handles the list ingredients query
type ListIngredientsHandler struct {
	repo domain.IngredientRepository
}

// NewListIngredientsHandler creates a new list ingredients handler
func NewListIngredientsHandler(repo domain.IngredientRepository) *ListIngredientsHandler {
	return &ListIngredientsHandler{repo: repo}
}

// Handle executes the list ingredients query
func (h *ListIngredientsHandler) Handle(q ListIngredientsQuery) ([]domain.Ingredient, error) {
	ingredients, err := h.repo.FindAll(q.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}
