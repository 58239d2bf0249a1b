package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quotedeck/quotedeck/internal/anthropic"
	"github.com/quotedeck/quotedeck/internal/api"
	"github.com/quotedeck/quotedeck/internal/batch"
	"github.com/quotedeck/quotedeck/internal/config"
	"github.com/quotedeck/quotedeck/internal/gemini"
	"github.com/quotedeck/quotedeck/internal/llm"
	"github.com/quotedeck/quotedeck/internal/pipeline"
	"github.com/quotedeck/quotedeck/internal/stage"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("quotedeck starting", "port", cfg.Port, "provider", cfg.LLMProvider)

	if _, err := regexp.Compile(cfg.TimestampPattern); err != nil {
		slog.Error("invalid TIMESTAMP_PATTERN", "pattern", cfg.TimestampPattern, "error", err)
		os.Exit(1)
	}

	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	// Model client
	var client llm.Client
	switch cfg.LLMProvider {
	case "gemini":
		if len(cfg.GeminiAPIKeys) == 0 {
			slog.Error("GEMINI_API_KEYS is required")
			os.Exit(1)
		}
		g, err := gemini.NewClient(cfg.GeminiAPIKeys, cfg.GeminiModel)
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		client = g
		slog.Info("gemini client ready", "model", cfg.GeminiModel, "keys", len(cfg.GeminiAPIKeys))
	default:
		if cfg.AnthropicAPIKey == "" {
			slog.Error("ANTHROPIC_API_KEY is required")
			os.Exit(1)
		}
		client = anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		slog.Info("anthropic client ready", "model", cfg.AnthropicModel)
	}

	stages := stage.NewRunner(client, cfg.MaxRetries, slog.Default())

	// The parser depends on the request's interviewer name, so the
	// pipeline is assembled per batch.
	runBatch := func(ctx context.Context, interviewer string, docs []batch.Document) ([]batch.MergedRow, []pipeline.Diagnostic, error) {
		parser, err := transcript.NewParser(interviewer, cfg.TimestampPattern)
		if err != nil {
			return nil, nil, err
		}
		p := pipeline.New(parser, stages, slog.Default())
		agg := batch.NewAggregator(p, cfg.MaxConcurrent, slog.Default())
		return agg.Run(ctx, docs)
	}

	srv := api.NewServer(api.Options{
		Port:        cfg.Port,
		UploadDir:   cfg.UploadDir,
		OutputDir:   cfg.OutputDir,
		WriteDigest: cfg.WriteDigest,
	}, runBatch, slog.Default())

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("quotedeck ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	slog.Info("quotedeck stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
