//go:build wireinject
// +build wireinject

package recipe

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	catalogrepo "github.com/tastebook/tastebook/internal/catalog/repository"
	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	membershiprepo "github.com/tastebook/tastebook/internal/membership/repository"
	httpDelivery "github.com/tastebook/tastebook/internal/recipe/delivery/http"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/repository"
	"github.com/tastebook/tastebook/internal/recipe/shortlink"
	"github.com/tastebook/tastebook/kafka"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// ProvideRecipeRepository provides the traced recipe repository
func ProvideRecipeRepository(db *gorm.DB) domain.RecipeRepository {
	return repository.NewGormRecipeRepositoryWithTracing(db)
}

// ProvideIngredientRepository provides the ingredient catalog repository
func ProvideIngredientRepository(db *gorm.DB) catalogdomain.IngredientRepository {
	return catalogrepo.NewGormIngredientRepository(db)
}

// ProvideTagRepository provides the tag catalog repository
func ProvideTagRepository(db *gorm.DB) catalogdomain.TagRepository {
	return catalogrepo.NewGormTagRepository(db)
}

// ProvideMembershipRepository provides the membership repository
func ProvideMembershipRepository(db *gorm.DB) membershipdomain.Repository {
	return membershiprepo.NewGormMembershipRepository(db)
}

// RepositorySet wires every repository the recipe API needs
var RepositorySet = wire.NewSet(
	ProvideRecipeRepository,
	ProvideIngredientRepository,
	ProvideTagRepository,
	ProvideMembershipRepository,
)

// InitializeHTTPHandler initializes the recipe HTTP handler with all
// dependencies. publisher and shortlinks may be nil.
func InitializeHTTPHandler(
	db *gorm.DB,
	images *imagestore.Store,
	publisher *kafka.Publisher,
	shortlinks *shortlink.Store,
	baseURL string,
) (*httpDelivery.RecipeHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewRecipeHandler,
	)
	return nil, nil
}
