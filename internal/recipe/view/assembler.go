package view

import (
	"fmt"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	userdomain "github.com/tastebook/tastebook/internal/user/domain"
)

// AuthorView is the public profile nested inside a recipe view, annotated
// with whether the viewer follows the author.
type AuthorView struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientView is one ingredient-quantity line: catalog fields joined
// with the amount from the recipe's join row.
type IngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full, viewer-personalized read representation
type RecipeView struct {
	ID                uint                `json:"id"`
	Tags              []catalogdomain.Tag `json:"tags"`
	Author            AuthorView          `json:"author"`
	Ingredients       []IngredientView    `json:"ingredients"`
	IsFavorited       bool                `json:"is_favorited"`
	IsInShoppingCart  bool                `json:"is_in_shopping_cart"`
	Name              string              `json:"name"`
	Image             string              `json:"image"`
	Text              string              `json:"text"`
	CookingTime       int                 `json:"cooking_time"`
}

// ShortRecipeView is the minimal projection used when a recipe is nested
// inside another payload; it carries no membership flags.
type ShortRecipeView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView is a followed author annotated with their recipes
type SubscriptionView struct {
	AuthorView
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// Assembler builds read representations personalized to a viewer. It is a
// pure projection over already-loaded aggregates plus membership existence
// checks; it never mutates anything.
type Assembler struct {
	memberships membershipdomain.Repository
}

// NewAssembler creates a new view assembler
func NewAssembler(memberships membershipdomain.Repository) *Assembler {
	return &Assembler{memberships: memberships}
}

// Recipe assembles the full view of one recipe for the given viewer.
// Viewer id 0 means anonymous: every membership flag is false and no
// lookups are issued.
func (a *Assembler) Recipe(recipe *domain.Recipe, viewerID uint) (*RecipeView, error) {
	author, err := a.Author(recipe.Author, viewerID)
	if err != nil {
		return nil, err
	}

	v := &RecipeView{
		ID:          recipe.ID,
		Tags:        recipe.Tags,
		Author:      author,
		Ingredients: make([]IngredientView, 0, len(recipe.Ingredients)),
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}
	if v.Tags == nil {
		v.Tags = []catalogdomain.Tag{}
	}

	for _, row := range recipe.Ingredients {
		v.Ingredients = append(v.Ingredients, IngredientView{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	if viewerID != 0 {
		if v.IsFavorited, err = a.memberships.Exists(viewerID, recipe.ID, membershipdomain.KindFavorite); err != nil {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		if v.IsInShoppingCart, err = a.memberships.Exists(viewerID, recipe.ID, membershipdomain.KindShoppingCart); err != nil {
			return nil, fmt.Errorf("failed to check shopping cart: %w", err)
		}
	}

	return v, nil
}

// Recipes assembles views for a list of recipes in order
func (a *Assembler) Recipes(recipes []domain.Recipe, viewerID uint) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		v, err := a.Recipe(&recipes[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Author assembles the public profile of a user, folding in whether the
// viewer follows them. Anonymous viewers and self-views yield false.
func (a *Assembler) Author(author *userdomain.User, viewerID uint) (AuthorView, error) {
	if author == nil {
		return AuthorView{}, fmt.Errorf("recipe author not loaded")
	}

	v := AuthorView{
		ID:        author.ID,
		Username:  author.Username,
		Email:     author.Email,
		FirstName: author.FirstName,
		LastName:  author.LastName,
		Avatar:    author.Avatar,
	}

	if viewerID != 0 && viewerID != author.ID {
		subscribed, err := a.memberships.Exists(viewerID, author.ID, membershipdomain.KindSubscription)
		if err != nil {
			return AuthorView{}, fmt.Errorf("failed to check subscription: %w", err)
		}
		v.IsSubscribed = subscribed
	}

	return v, nil
}

// Short builds the minimal nested projection of a recipe
func Short(recipe *domain.Recipe) ShortRecipeView {
	return ShortRecipeView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// Shorts builds minimal projections for a list of recipes
func Shorts(recipes []domain.Recipe) []ShortRecipeView {
	views := make([]ShortRecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, Short(&recipes[i]))
	}
	return views
}
