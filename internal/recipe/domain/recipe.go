package domain

import (
	"time"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	userdomain "github.com/tastebook/tastebook/internal/user/domain"
)

// Bounds enforced on writes; MaxNameLength matches the column size
const (
	MinCookingTime = 1
	MinAmount      = 1
	MaxNameLength  = 256
)

// Recipe is the aggregate root: the recipe row plus its owned
// ingredient-quantity join rows and tag links, treated as one consistency
// unit. Ingredient and tag sets are replaced wholesale on update.
type Recipe struct {
	ID          uint                     `json:"id" gorm:"primaryKey"`
	Name        string                   `json:"name" gorm:"size:256;not null"`
	Image       string                   `json:"image" gorm:"not null"`
	Text        string                   `json:"text" gorm:"type:text;not null"`
	CookingTime int                      `json:"cooking_time" gorm:"not null"`
	AuthorID    uint                     `json:"-" gorm:"index;not null"`
	Author      *userdomain.User         `json:"-" gorm:"foreignKey:AuthorID"`
	Ingredients []RecipeIngredient       `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []catalogdomain.Tag      `json:"-" gorm:"many2many:recipe_tags"`
	CreatedAt   time.Time                `json:"-"`
	UpdatedAt   time.Time                `json:"-"`
}

// TableName specifies the table name
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is the join row carrying the amount of one ingredient
// in one recipe. A recipe cannot list the same ingredient twice.
type RecipeIngredient struct {
	ID           uint                     `json:"-" gorm:"primaryKey"`
	RecipeID     uint                     `json:"-" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint                     `json:"id" gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   catalogdomain.Ingredient `json:"-" gorm:"foreignKey:IngredientID"`
	Amount       int                      `json:"amount" gorm:"not null"`
}

// TableName specifies the table name
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeFilter narrows recipe listings; zero values mean "no filter".
// FavoritedBy and InCartOf hold the viewer id whose membership rows are
// matched.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    uint
	FavoritedBy uint
	InCartOf    uint
}

// IngredientTotal is one summed shopping-list group
type IngredientTotal struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// RecipeRepository defines the contract for recipe data access. Create,
// Update and Delete touch the whole aggregate inside one transaction so a
// concurrent reader never observes a recipe with a partial ingredient or
// tag set.
type RecipeRepository interface {
	Create(recipe *Recipe) error
	Update(recipe *Recipe) error
	Delete(id uint) error
	FindByID(id uint) (*Recipe, error)
	FindAll(filter RecipeFilter) ([]Recipe, error)
	FindByAuthor(authorID uint, limit int) ([]Recipe, error)
	CountByAuthor(authorID uint) (int64, error)
	CartIngredientTotals(userID uint) ([]IngredientTotal, error)
}
