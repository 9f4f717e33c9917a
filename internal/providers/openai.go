package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/certforge/quizgen_service/internal/telemetry"
)

const openAIBaseURL = "https://api.openai.com/v1"

type OpenAI struct {
	Key, Model string
	DryRun     bool

	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

func NewOpenAI(key, model string, rps, burst int, dryRun bool) *OpenAI {
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 2
	}
	return &OpenAI{
		Key:     key,
		Model:   model,
		DryRun:  dryRun,
		client:  &http.Client{Timeout: 90 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		baseURL: openAIBaseURL,
	}
}

func (c *OpenAI) Name() SourceName { return SourceOpenAI }

func (c *OpenAI) Generate(ctx context.Context, prompt string, p GenParams) (string, error) {
	log := telemetry.L().With().Str("provider", string(c.Name())).Logger()

	if c.DryRun {
		log.Info().Msg("openai_dry_run_enabled")
		return simulatedQuiz, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body := map[string]any{
		"model":             c.Model,
		"input":             prompt,
		"temperature":       p.Temperature,
		"top_p":             p.TopP,
		"max_output_tokens": p.MaxOutputTokens,
	}

	b, _ := json.Marshal(body)
	log.Debug().Int("body_len", len(b)).Msg("openai_request")

	req, _ := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/responses", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.Key)
	req.Header.Set("Content-Type", "application/json")

	t0 := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("openai_request_failed")
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	log.Debug().Int("body_len", len(raw)).Msg("openai_response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Str("status", resp.Status).RawJSON("body", raw).Msg("openai_http_error")
		return "", errors.New("openai http " + resp.Status)
	}

	text := extractOpenAIText(raw)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("openai: empty text")
	}

	log.Debug().Int("latency_ms", int(time.Since(t0)/time.Millisecond)).Int("chars", len(text)).Msg("openai_done")
	return text, nil
}

// get text from Responses API or fallback Chat Completions.
func extractOpenAIText(raw []byte) string {
	var r1 struct {
		OutputText string `json:"output_text"`
	}
	if json.Unmarshal(raw, &r1) == nil && strings.TrimSpace(r1.OutputText) != "" {
		return r1.OutputText
	}

	// responses API: output[].content[].text
	var r2 struct {
		Output []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if json.Unmarshal(raw, &r2) == nil && len(r2.Output) > 0 {
		for _, c := range r2.Output[0].Content {
			if strings.TrimSpace(c.Text) != "" {
				return c.Text
			}
		}
	}

	// fallback chat completions format: choices[0].message.content
	var r3 struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if json.Unmarshal(raw, &r3) == nil && len(r3.Choices) > 0 {
		return r3.Choices[0].Message.Content
	}

	return ""
}
