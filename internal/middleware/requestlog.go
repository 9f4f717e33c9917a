package middleware

import (
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/certforge/quizgen_service/internal/config"
	"github.com/certforge/quizgen_service/internal/telemetry"
)

func RequestLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log := telemetry.L().With().Logger()

		log.Info().Msgf("%s %s %d %v ua=%q ip=%s",
			c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start),
			c.Get("User-Agent"), c.IP(),
		)
		return err
	}
}

// Recover turns panics anywhere below into a generic 500. The stack is
// logged always and attached to the response only outside production.
func Recover(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log := telemetry.L().With().Logger()
				log.Error().Interface("panic", r).Msg("panic: recovered")
				log.Error().Msg(string(debug.Stack()))

				body := fiber.Map{"error": "internal server error"}
				if !cfg.IsProduction() {
					body["diagnostic"] = string(debug.Stack())
				}
				_ = c.Status(fiber.StatusInternalServerError).JSON(body)
			}
		}()
		return c.Next()
	}
}

// CORS restricts the surface to what the endpoint actually needs:
// POST plus its preflight, Content-Type only, origins from the allow-list.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Content-Type",
		MaxAge:       86400,
	})
}
