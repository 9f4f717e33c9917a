package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/certforge/quizgen_service/internal/cache"
	"github.com/certforge/quizgen_service/internal/config"
	"github.com/certforge/quizgen_service/internal/middleware"
	"github.com/certforge/quizgen_service/internal/quiz"
	"github.com/certforge/quizgen_service/internal/telemetry"
)

func main() {
	cfg := config.Load()

	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	tlog.Info().Str("port", cfg.AppPort).Str("engine", cfg.GenEngine).Str("env", cfg.AppEnv).Msg("booting quizgen_service")

	var rdb *redis.Client
	if cfg.QuotaDailyLimit > 0 {
		rdb = cache.MustConnect(cfg.RedisAddr, cfg.RedisDB)
	}

	app := fiber.New()

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover(cfg))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.RequestLog())
	app.Use(middleware.RateLimiter())
	app.Use(middleware.SecureHeaders())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	qh := quiz.NewHandler(cfg, rdb)
	app.Post("/generate-quiz", qh.GenerateQuiz)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
