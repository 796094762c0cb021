package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Description Create a recipe with ingredients, tags and a base64 image; the author is the caller
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,text=string,cooking_time=int,image=string,tags=[]int,ingredients=[]object{id=int,amount=int}} true "Recipe data"
// @Success 201 {object} object{id=int,tags=[]object,author=object,ingredients=[]object,is_favorited=bool,is_in_shopping_cart=bool,name=string,image=string,text=string,cooking_time=int}
// @Failure 400 {object} object{errors=string}
// @Router /api/recipes [post]
func (h *RecipeHandler) CreateRecipeDoc() {}

// ListRecipes godoc
// @Summary List recipes
// @Description List recipes filtered by tags, author, favorites and shopping cart membership
// @Tags Recipes
// @Produce json
// @Param tags query []string false "Tag slugs"
// @Param author query int false "Author ID"
// @Param is_favorited query int false "Only the caller's favorites (1)"
// @Param is_in_shopping_cart query int false "Only the caller's cart (1)"
// @Success 200 {array} object{id=int,name=string}
// @Router /api/recipes [get]
func (h *RecipeHandler) ListRecipesDoc() {}

// GetRecipe godoc
// @Summary Get a recipe
// @Description Get a single recipe personalized for the viewer
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{id=int,name=string}
// @Failure 404 {object} object{errors=string}
// @Router /api/recipes/{id} [get]
func (h *RecipeHandler) GetRecipeDoc() {}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Replace the recipe's fields and its whole ingredient and tag sets; author only
// @Tags Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{id=int,name=string}
// @Failure 400 {object} object{errors=string}
// @Failure 403 {object} object{errors=string}
// @Router /api/recipes/{id} [patch]
func (h *RecipeHandler) UpdateRecipeDoc() {}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe with its ingredient rows, tag links and favorite/cart entries; author only
// @Tags Recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 403 {object} object{errors=string}
// @Failure 404 {object} object{errors=string}
// @Router /api/recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipeDoc() {}

// AddFavorite godoc
// @Summary Add a recipe to favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} object{id=int,name=string,image=string,cooking_time=int}
// @Failure 400 {object} object{errors=string}
// @Router /api/recipes/{id}/favorite [post]
func (h *RecipeHandler) AddFavoriteDoc() {}

// DownloadShoppingCart godoc
// @Summary Download the consolidated shopping list
// @Description One line per ingredient with summed amounts across the cart
// @Tags ShoppingCart
// @Security BearerAuth
// @Produce plain
// @Success 200 {string} string "shopping list"
// @Router /api/recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCartDoc() {}

// GetShortLink godoc
// @Summary Get a short link for a recipe
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{short-link=string}
// @Failure 404 {object} object{errors=string}
// @Router /api/recipes/{id}/get-link [get]
func (h *RecipeHandler) GetShortLinkDoc() {}
