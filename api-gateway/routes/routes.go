package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tastebook/tastebook/api-gateway/config"
	"github.com/tastebook/tastebook/api-gateway/middleware"
	"github.com/tastebook/tastebook/api-gateway/proxy"
)

// RouteDefinition maps a path prefix to its auth requirement
type RouteDefinition struct {
	Prefix      string
	Description string
	RequireAuth bool
}

// Routes holds all route definitions. Recipe and catalog reads stay public
// so anonymous browsing works; the upstream enforces the finer-grained
// author checks itself.
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/auth",
		Description: "Token endpoints (login, logout)",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/users",
		Description: "Accounts, profiles and subscriptions",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/recipes",
		Description: "Recipes, favorites, shopping cart",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/ingredients",
		Description: "Ingredient catalog",
		RequireAuth: false,
	},
	{
		Prefix:      "/api/tags",
		Description: "Tag catalog",
		RequireAuth: false,
	},
	{
		Prefix:      "/s",
		Description: "Short link redirects",
		RequireAuth: false,
	},
	{
		Prefix:      "/media",
		Description: "Uploaded images",
		RequireAuth: false,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.Config) {
	forwarder := proxy.NewForwarder(cfg)

	// Gateway liveness
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// Readiness checks the upstream API
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.APIBaseURL+cfg.HealthCheck, nil)
		if err == nil {
			resp, doErr := http.DefaultClient.Do(req)
			if doErr == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return c.JSON(fiber.Map{"status": "ready"})
				}
			}
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready"})
	})

	// Routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Tastebook API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerRoute(app, route, forwarder)
	}
}

// registerRoute wires one prefix through optional auth to the forwarder
func registerRoute(app *fiber.App, route RouteDefinition, forwarder *proxy.Forwarder) {
	handler := forwarder.Forward

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	} else {
		// forward identity headers upstream when a token is present
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)
	app.All(route.Prefix, append(middlewares, handler)...)
}
