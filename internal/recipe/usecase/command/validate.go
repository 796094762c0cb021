package command

import (
	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// IngredientAmount is one requested ingredient-quantity pair
type IngredientAmount struct {
	ID     uint
	Amount int
}

// validateIngredients checks the requested ingredient list in order:
// non-empty, no duplicates, every id known to the catalog, every amount
// at least MinAmount. Returns the join rows ready to persist.
func validateIngredients(requested []IngredientAmount, catalog catalogdomain.IngredientRepository) ([]domain.RecipeIngredient, error) {
	if len(requested) == 0 {
		return nil, apperrors.Validationf("at least one ingredient required")
	}

	seen := make(map[uint]struct{}, len(requested))
	ids := make([]uint, 0, len(requested))
	for _, ing := range requested {
		if _, dup := seen[ing.ID]; dup {
			return nil, apperrors.Validationf("duplicate ingredient %d", ing.ID)
		}
		seen[ing.ID] = struct{}{}
		ids = append(ids, ing.ID)
	}

	known, err := catalog.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	knownIDs := make(map[uint]struct{}, len(known))
	for _, ing := range known {
		knownIDs[ing.ID] = struct{}{}
	}
	for _, ing := range requested {
		if _, ok := knownIDs[ing.ID]; !ok {
			return nil, apperrors.Validationf("ingredient %d not found", ing.ID)
		}
	}

	for _, ing := range requested {
		if ing.Amount < domain.MinAmount {
			return nil, apperrors.Validationf("ingredient %d amount must be at least %d", ing.ID, domain.MinAmount)
		}
	}

	rows := make([]domain.RecipeIngredient, 0, len(requested))
	for _, ing := range requested {
		rows = append(rows, domain.RecipeIngredient{IngredientID: ing.ID, Amount: ing.Amount})
	}
	return rows, nil
}

// validateTags checks the requested tag list: non-empty, no duplicates,
// every id known to the catalog. Returns the tag rows for association.
func validateTags(requested []uint, catalog catalogdomain.TagRepository) ([]catalogdomain.Tag, error) {
	if len(requested) == 0 {
		return nil, apperrors.Validationf("at least one tag required")
	}

	seen := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			return nil, apperrors.Validationf("duplicate tag %d", id)
		}
		seen[id] = struct{}{}
	}

	known, err := catalog.FindByIDs(requested)
	if err != nil {
		return nil, err
	}
	knownByID := make(map[uint]catalogdomain.Tag, len(known))
	for _, tag := range known {
		knownByID[tag.ID] = tag
	}

	tags := make([]catalogdomain.Tag, 0, len(requested))
	for _, id := range requested {
		tag, ok := knownByID[id]
		if !ok {
			return nil, apperrors.Validationf("tag %d not found", id)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// validateScalars checks the plain recipe fields
func validateScalars(name, text string, cookingTime int) error {
	if name == "" {
		return apperrors.Validationf("name is required")
	}
	if len(name) > domain.MaxNameLength {
		return apperrors.Validationf("name must be at most %d characters", domain.MaxNameLength)
	}
	if text == "" {
		return apperrors.Validationf("text is required")
	}
	if cookingTime < domain.MinCookingTime {
		return apperrors.Validationf("cooking time must be at least %d", domain.MinCookingTime)
	}
	return nil
}
