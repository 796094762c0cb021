package query

import (
	"github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// GetIngredientQuery represents the query to get one ingredient
type GetIngredientQuery struct {
	ID uint
}

// GetIngredientHandler handles the get ingredient query
type GetIngredientHandler struct {
	repo domain.IngredientRepository
}

// NewGetIngredientHandler creates a new get ingredient handler
func NewGetIngredientHandler(repo domain.IngredientRepository) *GetIngredientHandler {
	return &GetIngredientHandler{repo: repo}
}

// Handle executes the get ingredient query
func (h *GetIngredientHandler) Handle(q GetIngredientQuery) (*domain.Ingredient, error) {
	if q.ID == 0 {
		return nil, apperrors.NotFoundf("ingredient %d", q.ID)
	}
	return h.repo.FindByID(q.ID)
}
