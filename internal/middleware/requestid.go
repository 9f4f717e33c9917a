package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReqIDKey is the locals key carrying the request id down the handler chain.
const ReqIDKey = "reqID"

const requestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or mints one, so every log line
// of a generation run can be correlated.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDHeader, rid)
		c.Locals(ReqIDKey, rid)
		return c.Next()
	}
}
