package main

// @title Tastebook API
// @version 1.0
// @description Recipe sharing service: recipes with ingredients and tags, favorites, shopping cart with a downloadable consolidated list, and author subscriptions.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Registration and token endpoints

// @tag.name Users
// @tag.description Account and profile endpoints

// @tag.name Recipes
// @tag.description Recipe CRUD and short links

// @tag.name Favorites
// @tag.description Favorite set endpoints

// @tag.name ShoppingCart
// @tag.description Shopping cart and list download

// @tag.name Subscriptions
// @tag.description Author subscription endpoints

// @tag.name Catalog
// @tag.description Ingredient and tag reference data
