package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tastebook/tastebook/pkg/auth"
)

// runs one request through a fiber app and captures the limiter key the
// request would be counted against
func limiterKeyFor(t *testing.T, rl *RateLimiter, req *http.Request) string {
	t.Helper()

	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = rl.identifier(c)
		return c.SendStatus(fiber.StatusOK)
	})

	if _, err := app.Test(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return got
}

func TestRateLimiterKeysAuthenticatedCallersPerUser(t *testing.T) {
	rl := NewRateLimiter(nil, 100, time.Minute)

	token, err := auth.GenerateToken(42, "chef", "chef@example.com")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	if got := limiterKeyFor(t, rl, req); got != "user:42" {
		t.Errorf("authenticated caller keyed %q, want user:42", got)
	}
}

func TestRateLimiterKeysAnonymousCallersPerIP(t *testing.T) {
	rl := NewRateLimiter(nil, 100, time.Minute)

	if got := limiterKeyFor(t, rl, httptest.NewRequest("GET", "/", nil)); !strings.HasPrefix(got, "ip:") {
		t.Errorf("anonymous caller keyed %q, want an ip key", got)
	}
}

func TestRateLimiterIgnoresInvalidTokens(t *testing.T) {
	rl := NewRateLimiter(nil, 100, time.Minute)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	if got := limiterKeyFor(t, rl, req); !strings.HasPrefix(got, "ip:") {
		t.Errorf("invalid token keyed %q, want an ip key", got)
	}
}
