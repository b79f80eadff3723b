package wardrobe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/wardrobe-advisor/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/wardrobe-advisor/pkg/errors"
	"github.com/yanqian/wardrobe-advisor/pkg/metrics"
)

const (
	defaultSystemPrompt = "You are a helpful assistant that recommends multiple outfits based on weather and available wardrobe items."
	defaultMaxAttempts  = 5
)

// Service exposes weather aware wardrobe recommendations.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type WeatherClient interface {
	Current(ctx context.Context, city string) (WeatherSnapshot, error)
}

// TokenCounter estimates how many model tokens a piece of text consumes.
type TokenCounter interface {
	Count(text string) int
}

type service struct {
	cfg     Config
	client  ChatClient
	weather WeatherClient
	tokens  TokenCounter
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewService wires up the wardrobe domain. tokens may be nil, which disables
// the prompt budget check.
func NewService(cfg Config, weather WeatherClient, client ChatClient, tokens TokenCounter, logger *slog.Logger) Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &service{
		cfg:     cfg,
		client:  client,
		weather: weather,
		tokens:  tokens,
		logger:  logger.With("component", "wardrobe.service"),
		sleep:   sleepContext,
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (resp Response, err error) {
	defer func() { observeOutcome(err) }()

	refs := req.ImageURLs
	if len(refs) == 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "No image URLs provided.", nil)
	}

	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	weather, err := s.weather.Current(ctx, s.cfg.City)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeWeatherProvider, "Error fetching weather data", err)
	}
	description := strings.TrimSpace(weather.Description)
	if description == "" {
		description = UnknownWeather
	}
	s.logger.Info("wardrobe weather fetched", "city", firstNonEmpty(weather.City, s.cfg.City), "description", description)

	messages := s.buildMessages(description, refs)
	if err := s.checkPromptBudget(messages); err != nil {
		return Response{}, err
	}

	reply, err := s.requestRecommendation(ctx, messages)
	if err != nil {
		return Response{}, err
	}
	s.logger.Debug("wardrobe chat reply received", "content", reply)

	recommended, err := ExtractReferences(reply, refs)
	if err != nil {
		s.logger.Warn("wardrobe reply matched no references", "references", len(refs))
		return Response{}, err
	}
	s.logger.Info("wardrobe recommendation ready", "references", len(refs), "recommended", len(recommended))

	return Response{Recommendations: recommended}, nil
}

func (s *service) buildMessages(description string, refs []string) []chatgpt.Message {
	system := strings.TrimSpace(s.cfg.SystemPrompt)
	if system == "" {
		system = defaultSystemPrompt
	}
	return []chatgpt.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: buildUserPrompt(description, refs)},
	}
}

func buildUserPrompt(description string, refs []string) string {
	return fmt.Sprintf("Given today's weather is '%s', suggest at least five appropriate clothing items from the following URLs: %s.", description, strings.Join(refs, ", "))
}

func (s *service) checkPromptBudget(messages []chatgpt.Message) error {
	if s.tokens == nil || s.cfg.MaxPromptTokens <= 0 {
		return nil
	}
	total := 0
	for _, msg := range messages {
		total += s.tokens.Count(msg.Content)
	}
	s.logger.Debug("wardrobe prompt sized", "tokens", total, "limit", s.cfg.MaxPromptTokens)
	if total > s.cfg.MaxPromptTokens {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("Too many image URLs: prompt needs %d tokens, limit is %d.", total, s.cfg.MaxPromptTokens), nil)
	}
	return nil
}

// requestRecommendation calls the chat provider, retrying only on rate limit
// rejections. The backoff state lives in this call frame.
func (s *service) requestRecommendation(ctx context.Context, messages []chatgpt.Message) (string, error) {
	req := chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	wait := newBackoff(s.cfg.InitialBackoff)

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		completion, err := s.client.CreateChatCompletion(ctx, req)
		if err == nil {
			metrics.ChatAttempts.WithLabelValues("success").Inc()
			metrics.ObserveTokenUsage(completion.TokenUsage())
			if len(completion.Choices) == 0 {
				return "", apperrors.Wrap(apperrors.CodeLLM, "chatgpt returned no choices", nil)
			}
			return strings.TrimSpace(completion.Choices[0].Message.Content), nil
		}
		if !chatgpt.IsRateLimited(err) {
			metrics.ChatAttempts.WithLabelValues("error").Inc()
			return "", apperrors.Wrap(apperrors.CodeLLM, "chatgpt request failed", err)
		}
		metrics.ChatAttempts.WithLabelValues("rate_limited").Inc()
		if attempt == s.cfg.MaxAttempts {
			break
		}

		delay := wait.next()
		s.logger.Warn("chatgpt rate limited, backing off", "attempt", attempt, "max_attempts", s.cfg.MaxAttempts, "delay_ms", delay.Milliseconds())
		if err := s.sleep(ctx, delay); err != nil {
			return "", apperrors.Wrap(apperrors.CodeLLM, "recommendation aborted while backing off", err)
		}
		metrics.ChatBackoffSeconds.Add(delay.Seconds())
	}

	return "", apperrors.Wrap(apperrors.CodeRateLimitExceeded, "Rate limit exceeded. Please try again later.", nil)
}

func observeOutcome(err error) {
	result := "success"
	if err != nil {
		result = apperrors.CodeOf(err)
		if result == "" {
			result = "internal_error"
		}
	}
	metrics.Recommendations.WithLabelValues(result).Inc()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
