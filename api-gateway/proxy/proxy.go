package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tastebook/tastebook/api-gateway/config"
	"github.com/tastebook/tastebook/pkg/logger"
)

// Forwarder proxies requests to the upstream API service
type Forwarder struct {
	cfg    *config.Config
	client *http.Client
}

// NewForwarder creates a new forwarder
func NewForwarder(cfg *config.Config) *Forwarder {
	return &Forwarder{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Forward relays the request to the upstream and copies the response back
func (f *Forwarder) Forward(c *fiber.Ctx) error {
	targetURL := f.targetURL(c)

	req, err := http.NewRequestWithContext(
		c.UserContext(),
		c.Method(),
		targetURL,
		bytes.NewReader(c.Body()),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"errors": "Failed to create upstream request",
		})
	}

	f.copyRequestHeaders(c, req)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("target", targetURL).
			Msg("Upstream unreachable")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"errors": "Failed to reach the API service",
		})
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		if strings.ToLower(key) == "content-length" {
			continue
		}
		for _, value := range values {
			c.Set(key, value)
		}
	}
	c.Status(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"errors": "Failed to read upstream response",
		})
	}

	return c.Send(body)
}

func (f *Forwarder) targetURL(c *fiber.Ctx) string {
	path := string(c.Request().URI().Path())
	query := string(c.Request().URI().QueryString())
	if query != "" {
		query = "?" + query
	}
	return f.cfg.APIBaseURL + path + query
}

func (f *Forwarder) copyRequestHeaders(c *fiber.Ctx, req *http.Request) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		if strings.ToLower(string(key)) == "host" {
			return
		}
		req.Header.Set(string(key), string(value))
	})

	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())
}
