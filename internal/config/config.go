package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port             int
	LogLevel         string
	LLMProvider      string
	AnthropicAPIKey  string
	AnthropicModel   string
	GeminiAPIKeys    []string
	GeminiModel      string
	UploadDir        string
	OutputDir        string
	MaxRetries       int
	MaxConcurrent    int
	TimestampPattern string
	WriteDigest      bool
}

func Load() Config {
	return Config{
		Port:            envInt("QUOTEDECK_PORT", 8760),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		LLMProvider:     envStr("LLM_PROVIDER", "anthropic"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("QUOTEDECK_MODEL", "claude-sonnet-4-20250514"),
		GeminiAPIKeys:   envList("GEMINI_API_KEYS"),
		GeminiModel:     envStr("GEMINI_MODEL", "gemini-2.5-flash"),
		UploadDir:       envStr("UPLOAD_DIR", "inputs"),
		OutputDir:       envStr("OUTPUT_DIR", "outputs"),
		MaxRetries:      envInt("STAGE_MAX_RETRIES", 2),
		MaxConcurrent:   envInt("MAX_CONCURRENT_FILES", 4),
		// Timestamps embedded in transcripts vary by recording tool; the
		// pattern is configurable rather than fixed to one format.
		TimestampPattern: envStr("TIMESTAMP_PATTERN", `\b\d{2}:\d{2}:\d{2}\b`),
		WriteDigest:      envBool("WRITE_DOCX_DIGEST", true),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
