package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv, AppPort string
	CORSOrigins     []string

	GenEngine string

	GeminiKey, GeminiModel       string
	OpenAIKey, OpenAIModel       string
	AnthropicKey, AnthropicModel string

	GenMaxAttempts     int
	GenMaxOutputTokens int
	GenTemperature     float64
	GenTopP            float64
	GenModelTimeout    time.Duration
	GenDryRun          bool

	ModelRPS   int
	ModelBurst int

	QuotaDailyLimit int
	RedisAddr       string
	RedisDB         int
}

func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppEnv:             get("APP_ENV", "development"),
		AppPort:            get("APP_PORT", "8080"),
		CORSOrigins:        split(get("CORS_ORIGINS", "http://localhost:5173")),
		GenEngine:          strings.ToLower(get("GEN_ENGINE", "gemini")),
		GeminiKey:          get("GEMINI_API_KEY", ""),
		GeminiModel:        get("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIKey:          get("OPENAI_API_KEY", ""),
		OpenAIModel:        get("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicKey:       get("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     get("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),
		GenMaxAttempts:     atoi(get("GEN_MAX_ATTEMPTS", "3")),
		GenMaxOutputTokens: atoi(get("GEN_MAX_OUTPUT_TOKENS", "2048")),
		GenTemperature:     atof(get("GEN_TEMPERATURE", "0.9")),
		GenTopP:            atof(get("GEN_TOP_P", "0.95")),
		GenModelTimeout:    mustDuration(get("GEN_MODEL_TIMEOUT", "60s")),
		GenDryRun:          parseBool(get("GEN_DRY_RUN", "false")),
		ModelRPS:           atoi(get("MODEL_RPS", "2")),
		ModelBurst:         atoi(get("MODEL_BURST", "2")),
		QuotaDailyLimit:    atoi(get("QUOTA_DAILY_LIMIT", "0")),
		RedisAddr:          get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisDB:            atoi(get("REDIS_DB", "0")),
	}

	// the selected engine needs its key unless we run in dry-run mode
	if !c.GenDryRun {
		switch c.GenEngine {
		case "openai":
			c.OpenAIKey = must("OPENAI_API_KEY")
		case "claude", "anthropic":
			c.AnthropicKey = must("ANTHROPIC_API_KEY")
		default:
			c.GeminiKey = must("GEMINI_API_KEY")
		}
	}
	return c
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}
func atoi(s string) int                   { i, _ := strconv.Atoi(s); return i }
func atof(s string) float64               { f, _ := strconv.ParseFloat(s, 64); return f }
func parseBool(s string) bool             { b, _ := strconv.ParseBool(s); return b }
func mustDuration(s string) time.Duration { d, _ := time.ParseDuration(s); return d }
func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
