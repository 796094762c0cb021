//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	membershiprepo "github.com/tastebook/tastebook/internal/membership/repository"
	recipedomain "github.com/tastebook/tastebook/internal/recipe/domain"
	reciperepo "github.com/tastebook/tastebook/internal/recipe/repository"
	httpDelivery "github.com/tastebook/tastebook/internal/user/delivery/http"
	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/internal/user/repository"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideMembershipRepository provides the membership repository
func ProvideMembershipRepository(db *gorm.DB) membershipdomain.Repository {
	return membershiprepo.NewGormMembershipRepository(db)
}

// ProvideRecipeRepository provides the recipe repository used for the
// recipe previews nested in subscription views
func ProvideRecipeRepository(db *gorm.DB) recipedomain.RecipeRepository {
	return reciperepo.NewGormRecipeRepositoryWithTracing(db)
}

// RepositorySet wires every repository the user API needs
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideMembershipRepository,
	ProvideRecipeRepository,
)

// InitializeHTTPHandler initializes the user HTTP handler with all
// dependencies
func InitializeHTTPHandler(db *gorm.DB, images *imagestore.Store) (*httpDelivery.UserHandler, error) {
	wire.Build(
		RepositorySet,
		httpDelivery.NewUserHandler,
	)
	return nil, nil
}
