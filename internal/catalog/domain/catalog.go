package domain

// Ingredient is immutable reference data: a name plus the unit it is
// measured in. The same name may appear with several units.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:128;not null;uniqueIndex:idx_ingredient_name_unit"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null;uniqueIndex:idx_ingredient_name_unit"`
}

// TableName specifies the table name
func (Ingredient) TableName() string {
	return "ingredients"
}

// Tag is immutable reference data used to label recipes
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:32;not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:32;not null;uniqueIndex"`
}

// TableName specifies the table name
func (Tag) TableName() string {
	return "tags"
}

// IngredientRepository defines the contract for ingredient data access
type IngredientRepository interface {
	FindByID(id uint) (*Ingredient, error)
	FindByIDs(ids []uint) ([]Ingredient, error)
	FindAll(namePrefix string) ([]Ingredient, error)
}

// TagRepository defines the contract for tag data access
type TagRepository interface {
	FindByID(id uint) (*Tag, error)
	FindByIDs(ids []uint) ([]Tag, error)
	FindAll() ([]Tag, error)
}
