package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/certforge/quizgen_service/internal/telemetry"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Gemini struct {
	Key, Model string
	DryRun     bool

	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

func NewGemini(key, model string, rps, burst int, dryRun bool) *Gemini {
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 2
	}
	return &Gemini{
		Key:     key,
		Model:   model,
		DryRun:  dryRun,
		client:  &http.Client{Timeout: 90 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		baseURL: geminiBaseURL,
	}
}

func (c *Gemini) Name() SourceName { return SourceGemini }

func (c *Gemini) Generate(ctx context.Context, prompt string, p GenParams) (string, error) {
	log := telemetry.L().With().Str("provider", string(c.Name())).Logger()

	if c.DryRun {
		log.Info().Msg("gemini_dry_run_enabled")
		return simulatedQuiz, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body := map[string]any{
		"contents": []any{
			map[string]any{
				"role": "user",
				"parts": []any{
					map[string]string{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":      p.Temperature,
			"topP":             p.TopP,
			"maxOutputTokens":  p.MaxOutputTokens,
			"responseMimeType": "application/json",
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	log.Debug().Int("body_len", len(b)).Msg("gemini_request")

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.Model)
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-goog-api-key", c.Key)

	t0 := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("gemini_request_failed")
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	log.Debug().Int("status_code", resp.StatusCode).Int("body_len", len(raw)).Msg("gemini_response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Str("status", resp.Status).RawJSON("body", raw).Msg("gemini_http_error")
		return "", errors.New("gemini http " + resp.Status)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback *struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	_ = json.Unmarshal(raw, &out)

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", errors.New("gemini blocked: " + out.PromptFeedback.BlockReason)
	}

	var text string
	if len(out.Candidates) > 0 && len(out.Candidates[0].Content.Parts) > 0 {
		text = out.Candidates[0].Content.Parts[0].Text
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("gemini empty candidates")
	}

	log.Debug().Int("latency_ms", int(time.Since(t0)/time.Millisecond)).Int("chars", len(text)).Msg("gemini_done")
	return text, nil
}
