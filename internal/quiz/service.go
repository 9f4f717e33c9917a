package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/certforge/quizgen_service/internal/config"
	"github.com/certforge/quizgen_service/internal/providers"
	"github.com/certforge/quizgen_service/internal/telemetry"
)

const minQuestions = 3

// RepairFn is the JSON-repair collaborator, function-typed so tests can
// inject deterministic fixtures.
type RepairFn func(string) (string, error)

type Service struct {
	client      providers.Client
	repair      RepairFn
	maxAttempts int
	params      providers.GenParams
	callTimeout time.Duration
}

func NewService(client providers.Client, repair RepairFn, cfg *config.Config) *Service {
	attempts := cfg.GenMaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	timeout := cfg.GenModelTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		client:      client,
		repair:      repair,
		maxAttempts: attempts,
		params: providers.GenParams{
			MaxOutputTokens: cfg.GenMaxOutputTokens,
			Temperature:     cfg.GenTemperature,
			TopP:            cfg.GenTopP,
		},
		callTimeout: timeout,
	}
}

// GenerationError is returned when no attempt produced enough valid
// questions. LastRaw holds the final raw model response for diagnostics.
type GenerationError struct {
	Attempts int
	LastRaw  string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("no usable question set after %d attempts", e.Attempts)
}

// Generate runs the retry loop: prompt the model, repair and parse its
// output, sanitize every question, and hold the survivors. Each attempt
// that parses replaces the held set outright; transport and parse failures
// leave the previous set in place. The loop ends early at 5 questions and
// fails if fewer than 3 are held at the end.
func (s *Service) Generate(ctx context.Context, certification string) ([]Question, error) {
	log := telemetry.L().With().Str("certification", certification).Logger()
	pol := PolicyFor(certification)

	var held []Question
	var lastRaw string

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prompt := BuildPrompt(certification, newNonce())

		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		text, err := s.client.Generate(callCtx, prompt, s.params)
		cancel()
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("model_call_failed")
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Warn().Int("attempt", attempt).Msg("model_empty_text")
			continue
		}
		lastRaw = text

		repaired, err := s.repair(text)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Int("raw_len", len(text)).Msg("json_repair_failed")
			continue
		}

		var parsed struct {
			Questions []any `json:"questions"`
		}
		if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("json_parse_failed")
			continue
		}
		if len(parsed.Questions) == 0 {
			log.Warn().Int("attempt", attempt).Msg("questions_array_missing")
			continue
		}

		// this attempt parsed: its survivors replace the held set outright
		batch := make([]Question, 0, questionCount)
		for i, item := range parsed.Questions {
			raw, ok := item.(map[string]any)
			if !ok {
				continue
			}
			q, ok := buildQuestion(raw, i, pol)
			if !ok {
				continue
			}
			batch = append(batch, q)
			if len(batch) == questionCount {
				break
			}
		}
		held = batch

		log.Info().Int("attempt", attempt).Int("raw", len(parsed.Questions)).Int("valid", len(held)).Msg("attempt_done")
		if len(held) >= questionCount {
			break
		}
	}

	if len(held) < minQuestions {
		return nil, &GenerationError{Attempts: s.maxAttempts, LastRaw: lastRaw}
	}
	return held, nil
}
