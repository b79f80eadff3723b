package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wardrobe-advisor/internal/domain/wardrobe"
	"github.com/yanqian/wardrobe-advisor/internal/infra/config"
	"github.com/yanqian/wardrobe-advisor/internal/infra/ratelimit"
	apperrors "github.com/yanqian/wardrobe-advisor/pkg/errors"
)

func TestRouter_RecommendSuccess(t *testing.T) {
	svc := &stubWardrobe{
		recommendFn: func(ctx context.Context, req wardrobe.Request) (wardrobe.Response, error) {
			require.Equal(t, []string{"u1", "u2", "u3"}, req.ImageURLs)
			return wardrobe.Response{Recommendations: []string{"u1", "u3"}}, nil
		},
	}

	recorder := performRequest("/wardrobe_recommend", `{"image_urls":["u1","u2","u3"]}`, newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
	require.JSONEq(t, `{"recommendations":["u1","u3"]}`, recorder.Body.String())
}

func TestRouter_RecommendInvalidJSON(t *testing.T) {
	svc := &stubWardrobe{}

	recorder := performRequest("/wardrobe_recommend", `{"image_urls":"u1"}`, newRouterUnderTest(t, svc, nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", body["code"])
	require.NotEmpty(t, body["detail"])
	require.Zero(t, svc.calls)
}

func TestRouter_RecommendErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		detail string
	}{
		{
			name:   "empty input",
			err:    apperrors.Wrap(apperrors.CodeInvalidInput, "No image URLs provided.", nil),
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
			detail: "No image URLs provided.",
		},
		{
			name:   "insufficient",
			err:    apperrors.Wrap(apperrors.CodeInsufficientRecommendations, "Not enough items were recommended. Please try again.", nil),
			status: http.StatusBadRequest,
			code:   apperrors.CodeInsufficientRecommendations,
			detail: "Not enough items were recommended. Please try again.",
		},
		{
			name:   "rate limit",
			err:    apperrors.Wrap(apperrors.CodeRateLimitExceeded, "Rate limit exceeded. Please try again later.", nil),
			status: http.StatusTooManyRequests,
			code:   apperrors.CodeRateLimitExceeded,
			detail: "Rate limit exceeded. Please try again later.",
		},
		{
			name:   "weather",
			err:    apperrors.Wrap(apperrors.CodeWeatherProvider, "Error fetching weather data", errors.New("status=401")),
			status: http.StatusInternalServerError,
			code:   apperrors.CodeWeatherProvider,
			detail: "Error fetching weather data: status=401",
		},
		{
			name:   "llm",
			err:    apperrors.Wrap(apperrors.CodeLLM, "chatgpt request failed", errors.New("boom")),
			status: http.StatusInternalServerError,
			code:   "recommendation_failed",
			detail: "chatgpt request failed: boom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubWardrobe{
				recommendFn: func(ctx context.Context, req wardrobe.Request) (wardrobe.Response, error) {
					return wardrobe.Response{}, tc.err
				},
			}
			recorder := performRequest("/wardrobe_recommend", `{"image_urls":["u1"]}`, newRouterUnderTest(t, svc, nil))
			require.Equal(t, tc.status, recorder.Code)

			body := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.code, body["code"])
			require.Equal(t, tc.detail, body["detail"])
		})
	}
}

func TestRouter_InboundRateLimit(t *testing.T) {
	svc := &stubWardrobe{}
	server := newRouterUnderTest(t, svc, ratelimit.NewMemoryLimiter(1, 1))

	first := performRequest("/wardrobe_recommend", `{"image_urls":["u1"]}`, server)
	require.Equal(t, http.StatusOK, first.Code)

	second := performRequest("/wardrobe_recommend", `{"image_urls":["u1"]}`, server)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "too_many_requests", decodeErrorBody(t, second.Body.Bytes())["code"])
	require.Equal(t, 1, svc.calls)
}

func TestRouter_LimiterFailureAllowsRequest(t *testing.T) {
	svc := &stubWardrobe{}
	server := newRouterUnderTest(t, svc, failingLimiter{})

	recorder := performRequest("/wardrobe_recommend", `{"image_urls":["u1"]}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1, svc.calls)
}

func TestRouter_Health(t *testing.T) {
	server := newRouterUnderTest(t, &stubWardrobe{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "rid-1")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "rid-1", rec.Header().Get(requestIDHeader))
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	server := newRouterUnderTest(t, &stubWardrobe{}, nil)
	_ = performRequest("/wardrobe_recommend", `{"image_urls":["u1"]}`, server)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "wardrobe_http_requests_total")
}

func TestResolveOrigin(t *testing.T) {
	require.Equal(t, "*", resolveOrigin("https://a.example", nil))
	require.Equal(t, "https://b.example", resolveOrigin("https://b.example", []string{"https://a.example", "https://b.example"}))
	require.Equal(t, "https://a.example", resolveOrigin("https://evil.example", []string{"https://a.example"}))
}

func performRequest(path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc wardrobe.Service, limiter ratelimit.Limiter) *http.Server {
	t.Helper()
	logger := newTestLogger()
	handler := NewHandler(svc, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, limiter, logger)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubWardrobe struct {
	recommendFn func(ctx context.Context, req wardrobe.Request) (wardrobe.Response, error)
	calls       int
}

func (s *stubWardrobe) Recommend(ctx context.Context, req wardrobe.Request) (wardrobe.Response, error) {
	s.calls++
	if s.recommendFn != nil {
		return s.recommendFn(ctx, req)
	}
	return wardrobe.Response{Recommendations: req.ImageURLs}, nil
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("valkey down")
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
