package quiz

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/certforge/quizgen_service/internal/config"
	"github.com/certforge/quizgen_service/internal/jsonrepair"
	"github.com/certforge/quizgen_service/internal/middleware"
	"github.com/certforge/quizgen_service/internal/providers"
	"github.com/certforge/quizgen_service/internal/quota"
	"github.com/certforge/quizgen_service/internal/telemetry"
)

const errCertificationRequired = "Invalid request: certification parameter required"

type Handler struct {
	cfg   *config.Config
	svc   *Service
	quota *quota.Limiter
}

func buildClient(cfg *config.Config) providers.Client {
	switch cfg.GenEngine {
	case "openai":
		return providers.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.ModelRPS, cfg.ModelBurst, cfg.GenDryRun)
	case "claude", "anthropic":
		return providers.NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel, cfg.ModelRPS, cfg.ModelBurst, cfg.GenDryRun)
	default:
		return providers.NewGemini(cfg.GeminiKey, cfg.GeminiModel, cfg.ModelRPS, cfg.ModelBurst, cfg.GenDryRun)
	}
}

func NewHandler(cfg *config.Config, rdb *redis.Client) *Handler {
	svc := NewService(buildClient(cfg), jsonrepair.Repair, cfg)
	return &Handler{
		cfg:   cfg,
		svc:   svc,
		quota: quota.NewLimiter(rdb, cfg.QuotaDailyLimit),
	}
}

// GenerateQuiz handles POST /generate-quiz.
func (h *Handler) GenerateQuiz(c *fiber.Ctx) error {
	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()

	var body struct {
		Certification any `json:"certification"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errCertificationRequired})
	}
	cert, ok := body.Certification.(string)
	if !ok || strings.TrimSpace(cert) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errCertificationRequired})
	}

	if allowed, err := h.quota.Allow(c.Context(), c.IP()); err != nil {
		// quota backend trouble never blocks generation
		log.Warn().Err(err).Msg("quota_check_failed")
	} else if !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "daily generation limit reached"})
	}

	questions, err := h.svc.Generate(c.Context(), cert)
	if err != nil {
		log.Error().Err(err).Str("certification", cert).Msg("generation_failed")

		resp := fiber.Map{"error": "Failed to generate quiz questions"}
		if !h.cfg.IsProduction() {
			resp["error"] = err.Error()
			var genErr *GenerationError
			if errors.As(err, &genErr) && genErr.LastRaw != "" {
				resp["diagnostic"] = excerpt(genErr.LastRaw, 300)
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	log.Info().Str("certification", cert).Int("questions", len(questions)).Msg("quiz_generated")
	return c.JSON(fiber.Map{"questions": questions})
}

func excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}
