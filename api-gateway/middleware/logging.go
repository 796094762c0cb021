package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/tastebook/tastebook/pkg/logger"
)

// StructuredLoggingMiddleware logs one line per completed request with
// latency and trace correlation.
func StructuredLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		traceID := "no-trace"
		if span := trace.SpanFromContext(c.UserContext()); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()

		logEvent := logger.Logger.Info()
		if statusCode >= 500 {
			logEvent = logger.Logger.Error()
		} else if statusCode >= 400 {
			logEvent = logger.Logger.Warn()
		}

		logEvent.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("ip", c.IP()).
			Str("trace_id", traceID).
			Str("request_id", c.Get("X-Request-Id")).
			Msg("Gateway request completed")

		if err != nil {
			logger.Logger.Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("trace_id", traceID).
				Msg("Gateway request error")
		}

		return err
	}
}
