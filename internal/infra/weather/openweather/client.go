package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/wardrobe-advisor/internal/domain/wardrobe"
	"github.com/yanqian/wardrobe-advisor/pkg/metrics"
)

const (
	defaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"
	defaultTimeout = 10 * time.Second
)

// Client fetches current conditions from the OpenWeatherMap API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. A zero timeout falls back to 10s.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(endpoint, "/?"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Current retrieves the weather description for a city. It makes exactly one request.
func (c *Client) Current(ctx context.Context, city string) (wardrobe.WeatherSnapshot, error) {
	snapshot, err := c.current(ctx, city)
	if err != nil {
		metrics.WeatherRequests.WithLabelValues("error").Inc()
		return wardrobe.WeatherSnapshot{}, err
	}
	metrics.WeatherRequests.WithLabelValues("success").Inc()
	return snapshot, nil
}

func (c *Client) current(ctx context.Context, city string) (wardrobe.WeatherSnapshot, error) {
	query := url.Values{}
	query.Set("appid", c.apiKey)
	query.Set("q", city)
	endpoint := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return wardrobe.WeatherSnapshot{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wardrobe.WeatherSnapshot{}, fmt.Errorf("weather request failed: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return wardrobe.WeatherSnapshot{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return wardrobe.WeatherSnapshot{}, fmt.Errorf("decode weather response: %w", err)
	}

	return wardrobe.WeatherSnapshot{
		City:        firstNonEmpty(raw.Name, city),
		Description: raw.description(),
	}, nil
}

type apiResponse struct {
	Name    string      `json:"name"`
	Weather []condition `json:"weather"`
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

func (r apiResponse) description() string {
	if len(r.Weather) == 0 {
		return wardrobe.UnknownWeather
	}
	if desc := strings.TrimSpace(r.Weather[0].Description); desc != "" {
		return desc
	}
	return wardrobe.UnknownWeather
}

// redactKey strips the API key from transport errors, which embed the request URL.
func redactKey(err error, key string) error {
	msg := err.Error()
	if key == "" || !strings.Contains(msg, key) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, key, "REDACTED"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
