package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/wardrobe-advisor/internal/domain/wardrobe"
	"github.com/yanqian/wardrobe-advisor/internal/infra/config"
	"github.com/yanqian/wardrobe-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/wardrobe-advisor/internal/infra/llm/tokens"
	"github.com/yanqian/wardrobe-advisor/internal/infra/ratelimit"
	"github.com/yanqian/wardrobe-advisor/internal/infra/weather/openweather"
)

func provideWardrobeConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{
		City:            cfg.Weather.City,
		Model:           cfg.LLM.Model,
		MaxTokens:       cfg.LLM.MaxTokens,
		Temperature:     cfg.LLM.Temperature,
		SystemPrompt:    cfg.Recommend.SystemPrompt,
		MaxAttempts:     cfg.Recommend.MaxAttempts,
		InitialBackoff:  cfg.Recommend.InitialBackoff,
		RequestTimeout:  cfg.Recommend.RequestTimeout,
		MaxPromptTokens: cfg.Recommend.MaxPromptTokens,
	}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideWeatherClient(cfg *config.Config) (*openweather.Client, error) {
	return openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) wardrobe.TokenCounter {
	if cfg.Recommend.MaxPromptTokens <= 0 {
		return nil
	}
	counter, err := tokens.NewCounter(cfg.LLM.Model)
	if err != nil {
		logger.Error("tokenizer unavailable, prompt budget check disabled", "error", err)
		return nil
	}
	logger.Info("prompt budget check enabled", "max_prompt_tokens", cfg.Recommend.MaxPromptTokens)
	return counter
}

func provideRateLimiter(cfg *config.Config, logger *slog.Logger) ratelimit.Limiter {
	rl := cfg.HTTP.RateLimit
	if !rl.Enabled {
		return nil
	}
	fallback := ratelimit.NewMemoryLimiter(rl.RequestsPerMinute, rl.Burst)
	if !cfg.Valkey.Enabled {
		return fallback
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory limiter", "error", err)
		return fallback
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory limiter", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory limiter", "error", err)
		client.Close()
		return fallback
	}
	logger.Info("valkey rate limiter enabled", "addr", cfg.Valkey.Addr)
	return ratelimit.NewValkeyLimiter(client, "wardrobe:ratelimit", rl.RequestsPerMinute)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
