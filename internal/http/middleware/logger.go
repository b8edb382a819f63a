package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger logs each HTTP request as one JSON object per line: timestamp,
// request_id, method, path, status, latency and response size. The status is
// collected after the handler chain so the final value is logged.
func Logger() fiber.Handler {
	return LoggerTo(os.Stdout)
}

// LoggerTo is Logger writing to the given sink; tests use a buffer.
func LoggerTo(w io.Writer) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		_ = enc.Encode(map[string]any{
			"ts":         time.Now().UTC().Format(time.RFC3339Nano),
			"level":      "info",
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes":      len(c.Response().Body()),
		})

		return err
	}
}
