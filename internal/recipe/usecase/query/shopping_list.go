package query

import (
	"fmt"
	"strings"

	"github.com/tastebook/tastebook/internal/recipe/domain"
)

// ShoppingListQuery asks for the consolidated ingredient summary of
// everything in the user's shopping cart.
type ShoppingListQuery struct {
	UserID uint
}

// ShoppingListHandler renders the shopping cart as a flat text document:
// one line per (ingredient, unit) group with summed amounts, ordered by
// ingredient name ascending.
type ShoppingListHandler struct {
	repo domain.RecipeRepository
}

// NewShoppingListHandler creates a new shopping list handler
func NewShoppingListHandler(repo domain.RecipeRepository) *ShoppingListHandler {
	return &ShoppingListHandler{repo: repo}
}

// Handle executes the shopping list query and returns the plain-text body
func (h *ShoppingListHandler) Handle(q ShoppingListQuery) (string, error) {
	totals, err := h.repo.CartIngredientTotals(q.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to build shopping list: %w", err)
	}

	lines := make([]string, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, fmt.Sprintf("%s - %d (%s)", t.Name, t.Total, t.MeasurementUnit))
	}
	return strings.Join(lines, "\n"), nil
}
