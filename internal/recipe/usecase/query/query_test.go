package query

import (
	"testing"

	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/view"
	userdomain "github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

type fakeMemberships struct{}

func (fakeMemberships) Add(*membershipdomain.Membership) error { return nil }
func (fakeMemberships) Remove(uint, uint, membershipdomain.Kind) error {
	return nil
}
func (fakeMemberships) Exists(uint, uint, membershipdomain.Kind) (bool, error) {
	return false, nil
}
func (fakeMemberships) TargetIDs(uint, membershipdomain.Kind) ([]uint, error) {
	return nil, nil
}

type fakeRecipeRepo struct {
	recipes    map[uint]*domain.Recipe
	totals     []domain.IngredientTotal
	lastFilter domain.RecipeFilter
	findCalls  int
}

func (f *fakeRecipeRepo) Create(*domain.Recipe) error { return nil }
func (f *fakeRecipeRepo) Update(*domain.Recipe) error { return nil }
func (f *fakeRecipeRepo) Delete(uint) error           { return nil }

func (f *fakeRecipeRepo) FindByID(id uint) (*domain.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, apperrors.NotFoundf("recipe %d", id)
	}
	return recipe, nil
}

func (f *fakeRecipeRepo) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	f.findCalls++
	f.lastFilter = filter
	var out []domain.Recipe
	for _, recipe := range f.recipes {
		out = append(out, *recipe)
	}
	return out, nil
}

func (f *fakeRecipeRepo) FindByAuthor(uint, int) ([]domain.Recipe, error) { return nil, nil }
func (f *fakeRecipeRepo) CountByAuthor(uint) (int64, error)               { return 0, nil }

func (f *fakeRecipeRepo) CartIngredientTotals(userID uint) ([]domain.IngredientTotal, error) {
	return f.totals, nil
}

func recipeWithAuthor(id uint) *domain.Recipe {
	return &domain.Recipe{
		ID:       id,
		Name:     "Soup",
		AuthorID: 1,
		Author:   &userdomain.User{ID: 1, Username: "chef"},
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	repo := &fakeRecipeRepo{recipes: map[uint]*domain.Recipe{}}
	handler := NewGetRecipeHandler(repo, view.NewAssembler(fakeMemberships{}))

	_, err := handler.Handle(GetRecipeQuery{RecipeID: 9})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetRecipe(t *testing.T) {
	repo := &fakeRecipeRepo{recipes: map[uint]*domain.Recipe{4: recipeWithAuthor(4)}}
	handler := NewGetRecipeHandler(repo, view.NewAssembler(fakeMemberships{}))

	v, err := handler.Handle(GetRecipeQuery{RecipeID: 4, ViewerID: 0})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if v.ID != 4 || v.Author.Username != "chef" {
		t.Errorf("unexpected view: %+v", v)
	}
}

func TestListRecipesAnonymousMembershipFiltersShortCircuit(t *testing.T) {
	repo := &fakeRecipeRepo{recipes: map[uint]*domain.Recipe{4: recipeWithAuthor(4)}}
	handler := NewListRecipesHandler(repo, view.NewAssembler(fakeMemberships{}))

	views, err := handler.Handle(ListRecipesQuery{ViewerID: 0, OnlyFavorited: true})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("anonymous favorites filter must yield nothing, got %d", len(views))
	}
	if repo.findCalls != 0 {
		t.Errorf("repository should not be queried, got %d calls", repo.findCalls)
	}
}

func TestListRecipesForwardsFilter(t *testing.T) {
	repo := &fakeRecipeRepo{recipes: map[uint]*domain.Recipe{4: recipeWithAuthor(4)}}
	handler := NewListRecipesHandler(repo, view.NewAssembler(fakeMemberships{}))

	_, err := handler.Handle(ListRecipesQuery{
		ViewerID:   8,
		TagSlugs:   []string{"soup", "dinner"},
		AuthorID:   1,
		OnlyInCart: true,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	got := repo.lastFilter
	if len(got.TagSlugs) != 2 || got.AuthorID != 1 || got.InCartOf != 8 || got.FavoritedBy != 0 {
		t.Errorf("unexpected filter: %+v", got)
	}
}

func TestShoppingListRendering(t *testing.T) {
	tests := []struct {
		name   string
		totals []domain.IngredientTotal
		want   string
	}{
		{
			name: "sums already grouped by name and unit",
			totals: []domain.IngredientTotal{
				{Name: "flour", MeasurementUnit: "g", Total: 500},
				{Name: "milk", MeasurementUnit: "ml", Total: 200},
			},
			want: "flour - 500 (g)\nmilk - 200 (ml)",
		},
		{
			name:   "single line",
			totals: []domain.IngredientTotal{{Name: "salt", MeasurementUnit: "g", Total: 5}},
			want:   "salt - 5 (g)",
		},
		{
			name:   "empty cart",
			totals: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRecipeRepo{totals: tt.totals}
			handler := NewShoppingListHandler(repo)

			got, err := handler.Handle(ShoppingListQuery{UserID: 1})
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
