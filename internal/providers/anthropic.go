package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/certforge/quizgen_service/internal/telemetry"
)

const anthropicBaseURL = "https://api.anthropic.com/v1"

type Anthropic struct {
	Key, Model string
	DryRun     bool

	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

func NewAnthropic(key, model string, rps, burst int, dryRun bool) *Anthropic {
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 2
	}
	return &Anthropic{
		Key:     key,
		Model:   model,
		DryRun:  dryRun,
		client:  &http.Client{Timeout: 90 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		baseURL: anthropicBaseURL,
	}
}

func (c *Anthropic) Name() SourceName { return SourceClaude }

func (c *Anthropic) Generate(ctx context.Context, prompt string, p GenParams) (string, error) {
	log := telemetry.L().With().Str("provider", string(c.Name())).Logger()

	if c.DryRun {
		log.Info().Msg("anthropic_dry_run_enabled")
		return simulatedQuiz, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body := map[string]any{
		"model":       c.Model,
		"max_tokens":  p.MaxOutputTokens,
		"temperature": p.Temperature,
		"top_p":       p.TopP,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/messages", bytes.NewReader(b))
	req.Header.Set("x-api-key", c.Key)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	t0 := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("anthropic_request_failed")
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Str("status", resp.Status).RawJSON("body", raw).Msg("anthropic_http_error")
		return "", errors.New("anthropic http " + resp.Status)
	}

	var out struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	_ = json.Unmarshal(raw, &out)
	if len(out.Content) == 0 {
		return "", errors.New("anthropic empty content")
	}

	log.Debug().Int("latency_ms", int(time.Since(t0)/time.Millisecond)).Msg("anthropic_done")
	return out.Content[0].Text, nil
}
