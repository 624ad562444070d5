package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"bffmvp/internal/logging"
)

// Logger is a middleware that writes one structured access log entry per request with
// request_id (from RequestID), method, path (no query string), status and latency in milliseconds.
// When the request carries a sampled span, trace_id and span_id are added.
func Logger(log logrus.FieldLogger) fiber.Handler {
	log = logging.Component(log, "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		entry := log.WithFields(logrus.Fields{
			"event":      "http_request",
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		})
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			entry = entry.WithFields(logrus.Fields{
				"trace_id": sc.TraceID().String(),
				"span_id":  sc.SpanID().String(),
			})
		}
		if status >= fiber.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request handled")
		}

		return err
	}
}
