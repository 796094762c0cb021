package command

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

type fakeIngredientRepo struct {
	ingredients map[uint]catalogdomain.Ingredient
}

func (f *fakeIngredientRepo) FindByID(id uint) (*catalogdomain.Ingredient, error) {
	ing, ok := f.ingredients[id]
	if !ok {
		return nil, apperrors.NotFoundf("ingredient %d", id)
	}
	return &ing, nil
}

func (f *fakeIngredientRepo) FindByIDs(ids []uint) ([]catalogdomain.Ingredient, error) {
	var out []catalogdomain.Ingredient
	for _, id := range ids {
		if ing, ok := f.ingredients[id]; ok {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (f *fakeIngredientRepo) FindAll(namePrefix string) ([]catalogdomain.Ingredient, error) {
	var out []catalogdomain.Ingredient
	for _, ing := range f.ingredients {
		if strings.HasPrefix(ing.Name, namePrefix) {
			out = append(out, ing)
		}
	}
	return out, nil
}

type fakeTagRepo struct {
	tags map[uint]catalogdomain.Tag
}

func (f *fakeTagRepo) FindByID(id uint) (*catalogdomain.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, apperrors.NotFoundf("tag %d", id)
	}
	return &tag, nil
}

func (f *fakeTagRepo) FindByIDs(ids []uint) ([]catalogdomain.Tag, error) {
	var out []catalogdomain.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) FindAll() ([]catalogdomain.Tag, error) {
	var out []catalogdomain.Tag
	for _, tag := range f.tags {
		out = append(out, tag)
	}
	return out, nil
}

type fakeRecipeRepo struct {
	recipes map[uint]*domain.Recipe
	nextID  uint
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uint]*domain.Recipe), nextID: 1}
}

func (f *fakeRecipeRepo) Create(recipe *domain.Recipe) error {
	recipe.ID = f.nextID
	f.nextID++
	stored := *recipe
	f.recipes[recipe.ID] = &stored
	return nil
}

func (f *fakeRecipeRepo) Update(recipe *domain.Recipe) error {
	if _, ok := f.recipes[recipe.ID]; !ok {
		return apperrors.NotFoundf("recipe %d", recipe.ID)
	}
	stored := *recipe
	f.recipes[recipe.ID] = &stored
	return nil
}

func (f *fakeRecipeRepo) Delete(id uint) error {
	if _, ok := f.recipes[id]; !ok {
		return apperrors.NotFoundf("recipe %d", id)
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) FindByID(id uint) (*domain.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, apperrors.NotFoundf("recipe %d", id)
	}
	out := *recipe
	return &out, nil
}

func (f *fakeRecipeRepo) FindAll(filter domain.RecipeFilter) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, recipe := range f.recipes {
		out = append(out, *recipe)
	}
	return out, nil
}

func (f *fakeRecipeRepo) FindByAuthor(authorID uint, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, recipe := range f.recipes {
		if recipe.AuthorID == authorID {
			out = append(out, *recipe)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecipeRepo) CountByAuthor(authorID uint) (int64, error) {
	var count int64
	for _, recipe := range f.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecipeRepo) CartIngredientTotals(userID uint) ([]domain.IngredientTotal, error) {
	return nil, nil
}

func testCatalogs() (*fakeIngredientRepo, *fakeTagRepo) {
	ingredients := &fakeIngredientRepo{ingredients: map[uint]catalogdomain.Ingredient{
		1: {ID: 1, Name: "flour", MeasurementUnit: "g"},
		2: {ID: 2, Name: "sugar", MeasurementUnit: "g"},
	}}
	tags := &fakeTagRepo{tags: map[uint]catalogdomain.Tag{
		10: {ID: 10, Name: "Breakfast", Slug: "breakfast"},
		20: {ID: 20, Name: "Dinner", Slug: "dinner"},
	}}
	return ingredients, tags
}

func testImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not really a png"))
}

func validCreateCommand() CreateRecipeCommand {
	return CreateRecipeCommand{
		AuthorID:    7,
		Name:        "Pancakes",
		Text:        "Mix and fry",
		CookingTime: 15,
		Image:       testImage(),
		Tags:        []uint{10},
		Ingredients: []IngredientAmount{{ID: 1, Amount: 200}},
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateRecipeCommand)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "name too long",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Name = strings.Repeat("x", 257) },
			wantErr: "at most 256 characters",
		},
		{
			name:    "missing text",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Text = "" },
			wantErr: "text is required",
		},
		{
			name:    "cooking time below minimum",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.CookingTime = 0 },
			wantErr: "cooking time",
		},
		{
			name:    "no ingredients",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Ingredients = nil },
			wantErr: "at least one ingredient",
		},
		{
			name: "duplicate ingredient",
			mutate: func(cmd *CreateRecipeCommand) {
				cmd.Ingredients = []IngredientAmount{{ID: 1, Amount: 100}, {ID: 1, Amount: 50}}
			},
			wantErr: "duplicate ingredient",
		},
		{
			name: "unknown ingredient",
			mutate: func(cmd *CreateRecipeCommand) {
				cmd.Ingredients = []IngredientAmount{{ID: 99, Amount: 100}}
			},
			wantErr: "ingredient 99 not found",
		},
		{
			name: "amount below minimum",
			mutate: func(cmd *CreateRecipeCommand) {
				cmd.Ingredients = []IngredientAmount{{ID: 1, Amount: 0}}
			},
			wantErr: "amount must be at least",
		},
		{
			name:    "no tags",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Tags = nil },
			wantErr: "at least one tag",
		},
		{
			name:    "duplicate tag",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Tags = []uint{10, 10} },
			wantErr: "duplicate tag",
		},
		{
			name:    "unknown tag",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Tags = []uint{99} },
			wantErr: "tag 99 not found",
		},
		{
			name:    "missing image",
			mutate:  func(cmd *CreateRecipeCommand) { cmd.Image = "" },
			wantErr: "image is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingredients, tags := testCatalogs()
			recipes := newFakeRecipeRepo()
			handler := NewCreateRecipeHandler(recipes, ingredients, tags, imagestore.New(t.TempDir()))

			cmd := validCreateCommand()
			tt.mutate(&cmd)

			_, err := handler.Handle(cmd)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !apperrors.IsValidation(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
			if len(recipes.recipes) != 0 {
				t.Errorf("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestCreateRecipeSuccess(t *testing.T) {
	ingredients, tags := testCatalogs()
	recipes := newFakeRecipeRepo()
	handler := NewCreateRecipeHandler(recipes, ingredients, tags, imagestore.New(t.TempDir()))

	cmd := validCreateCommand()
	cmd.Ingredients = []IngredientAmount{{ID: 1, Amount: 200}, {ID: 2, Amount: 50}}
	cmd.Tags = []uint{10, 20}

	recipe, err := handler.Handle(cmd)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if recipe.ID == 0 {
		t.Error("expected an assigned recipe ID")
	}
	if recipe.AuthorID != 7 {
		t.Errorf("AuthorID = %d, want 7", recipe.AuthorID)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("got %d ingredient rows, want 2", len(recipe.Ingredients))
	}
	if recipe.Ingredients[0].IngredientID != 1 || recipe.Ingredients[0].Amount != 200 {
		t.Errorf("unexpected first ingredient row: %+v", recipe.Ingredients[0])
	}
	if len(recipe.Tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(recipe.Tags))
	}
	if recipe.Image == "" || recipe.Image == cmd.Image {
		t.Errorf("image should be a stored path, got %q", recipe.Image)
	}
}

func TestUpdateRecipeReplacesSets(t *testing.T) {
	ingredients, tags := testCatalogs()
	recipes := newFakeRecipeRepo()
	store := imagestore.New(t.TempDir())

	create := NewCreateRecipeHandler(recipes, ingredients, tags, store)
	created, err := create.Handle(validCreateCommand())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := NewUpdateRecipeHandler(recipes, ingredients, tags, store)
	updated, err := update.Handle(UpdateRecipeCommand{
		RecipeID:    created.ID,
		Name:        "Crepes",
		Text:        "Thinner",
		CookingTime: 20,
		Tags:        []uint{20},
		Ingredients: []IngredientAmount{{ID: 2, Amount: 30}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Crepes" || updated.CookingTime != 20 {
		t.Errorf("scalars not replaced: %+v", updated)
	}
	if updated.AuthorID != created.AuthorID {
		t.Errorf("author must survive updates: got %d, want %d", updated.AuthorID, created.AuthorID)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].IngredientID != 2 {
		t.Errorf("ingredient set not replaced: %+v", updated.Ingredients)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != 20 {
		t.Errorf("tag set not replaced: %+v", updated.Tags)
	}
	if updated.Image != created.Image {
		t.Errorf("empty image payload must keep the stored image")
	}
}

func TestUpdateRecipeRejectsEmptySets(t *testing.T) {
	ingredients, tags := testCatalogs()
	recipes := newFakeRecipeRepo()
	store := imagestore.New(t.TempDir())

	create := NewCreateRecipeHandler(recipes, ingredients, tags, store)
	created, err := create.Handle(validCreateCommand())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := NewUpdateRecipeHandler(recipes, ingredients, tags, store)
	_, err = update.Handle(UpdateRecipeCommand{
		RecipeID:    created.ID,
		Name:        "Crepes",
		Text:        "Thinner",
		CookingTime: 20,
		Tags:        []uint{10},
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("omitted ingredient list must be a validation error, got %v", err)
	}
}

func TestDeleteRecipeRemovesImage(t *testing.T) {
	ingredients, tags := testCatalogs()
	recipes := newFakeRecipeRepo()
	root := t.TempDir()
	store := imagestore.New(root)

	create := NewCreateRecipeHandler(recipes, ingredients, tags, store)
	created, err := create.Handle(validCreateCommand())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	imagePath := filepath.Join(root, created.Image)
	if _, err := os.Stat(imagePath); err != nil {
		t.Fatalf("stored image missing before delete: %v", err)
	}

	del := NewDeleteRecipeHandler(recipes, store)
	if err := del.Handle(DeleteRecipeCommand{RecipeID: created.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := recipes.FindByID(created.ID); !apperrors.IsNotFound(err) {
		t.Errorf("recipe should be gone, got %v", err)
	}
	if _, err := os.Stat(imagePath); !os.IsNotExist(err) {
		t.Errorf("image file should be removed, stat err = %v", err)
	}
}

func TestDeleteRecipeNotFound(t *testing.T) {
	recipes := newFakeRecipeRepo()
	del := NewDeleteRecipeHandler(recipes, imagestore.New(t.TempDir()))

	err := del.Handle(DeleteRecipeCommand{RecipeID: 42})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
