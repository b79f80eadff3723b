//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/wardrobe-advisor/internal/bootstrap"
	"github.com/yanqian/wardrobe-advisor/internal/domain/wardrobe"
	"github.com/yanqian/wardrobe-advisor/internal/infra/config"
	"github.com/yanqian/wardrobe-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/wardrobe-advisor/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/wardrobe-advisor/internal/interface/http"
	"github.com/yanqian/wardrobe-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWardrobeConfig,
		provideChatGPTClient,
		provideWeatherClient,
		provideTokenCounter,
		provideRateLimiter,
		wardrobe.NewService,
		wire.Bind(new(wardrobe.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(wardrobe.WeatherClient), new(*openweather.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
