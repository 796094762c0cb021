package main

import (
	"testing"

	"github.com/gofiber/fiber/v2/middleware/cors"
)

func TestCorsConfigWildcardDisablesCredentials(t *testing.T) {
	cfg := corsConfig("*")

	if cfg.AllowCredentials {
		t.Error("wildcard origins must not allow credentials")
	}
	// cors.New panics on a credentialed wildcard; the default config has
	// to construct cleanly.
	_ = cors.New(cfg)
}

func TestCorsConfigExplicitOriginsAllowCredentials(t *testing.T) {
	cfg := corsConfig("https://tastebook.example.com")

	if !cfg.AllowCredentials {
		t.Error("an explicit origin list should allow credentials")
	}
	if cfg.AllowOrigins != "https://tastebook.example.com" {
		t.Errorf("AllowOrigins = %q", cfg.AllowOrigins)
	}
	_ = cors.New(cfg)
}
