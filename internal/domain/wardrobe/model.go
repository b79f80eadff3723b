package wardrobe

import "time"

// UnknownWeather is reported when the provider payload carries no description.
const UnknownWeather = "unknown weather"

// Request captures the payload accepted by the wardrobe recommendation endpoint.
type Request struct {
	ImageURLs []string `json:"image_urls"`
}

// Response is serialized back to API consumers.
type Response struct {
	Recommendations []string `json:"recommendations"`
}

// WeatherSnapshot is the current weather reduced to what the prompt needs.
type WeatherSnapshot struct {
	City        string
	Description string
}

// Config wires runtime dependencies for the wardrobe domain.
type Config struct {
	City            string
	Model           string
	MaxTokens       int
	Temperature     float32
	SystemPrompt    string
	MaxAttempts     int
	InitialBackoff  time.Duration
	RequestTimeout  time.Duration
	MaxPromptTokens int
}
