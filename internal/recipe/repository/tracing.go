package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tastebook/tastebook/internal/recipe/domain"
)

var tracer = otel.Tracer("recipe-repository")

// GormRecipeRepositoryWithTracing wraps GormRecipeRepository with spans
// around the aggregate mutations and the heavier read paths.
type GormRecipeRepositoryWithTracing struct {
	*GormRecipeRepository
}

// NewGormRecipeRepositoryWithTracing creates a new repository with tracing
func NewGormRecipeRepositoryWithTracing(db *gorm.DB) *GormRecipeRepositoryWithTracing {
	return &GormRecipeRepositoryWithTracing{
		GormRecipeRepository: NewGormRecipeRepository(db),
	}
}

// Create with tracing
func (r *GormRecipeRepositoryWithTracing) Create(recipe *domain.Recipe) error {
	_, span := tracer.Start(context.Background(), "repository.Create",
		trace.WithAttributes(
			attribute.String("recipe.name", recipe.Name),
			attribute.Int("recipe.ingredients", len(recipe.Ingredients)),
			attribute.Int("recipe.tags", len(recipe.Tags)),
		),
	)
	defer span.End()

	if err := r.GormRecipeRepository.Create(recipe); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("recipe.id", int(recipe.ID)))
	return nil
}

// Update with tracing
func (r *GormRecipeRepositoryWithTracing) Update(recipe *domain.Recipe) error {
	_, span := tracer.Start(context.Background(), "repository.Update",
		trace.WithAttributes(
			attribute.Int("recipe.id", int(recipe.ID)),
			attribute.Int("recipe.ingredients", len(recipe.Ingredients)),
			attribute.Int("recipe.tags", len(recipe.Tags)),
		),
	)
	defer span.End()

	if err := r.GormRecipeRepository.Update(recipe); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Delete with tracing
func (r *GormRecipeRepositoryWithTracing) Delete(id uint) error {
	_, span := tracer.Start(context.Background(), "repository.Delete",
		trace.WithAttributes(attribute.Int("recipe.id", int(id))),
	)
	defer span.End()

	if err := r.GormRecipeRepository.Delete(id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// CartIngredientTotals with tracing
func (r *GormRecipeRepositoryWithTracing) CartIngredientTotals(userID uint) ([]domain.IngredientTotal, error) {
	_, span := tracer.Start(context.Background(), "repository.CartIngredientTotals",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	totals, err := r.GormRecipeRepository.CartIngredientTotals(userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("shopping_list.groups", len(totals)))
	return totals, nil
}
