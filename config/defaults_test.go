package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderAzureSora, cfg.Provider)

	// 生成参数默认值
	assert.Equal(t, DefaultPrompt, cfg.Generation.Prompt)
	assert.Equal(t, 1280, cfg.Generation.Width)
	assert.Equal(t, 720, cfg.Generation.Height)
	assert.Equal(t, 10, cfg.Generation.Duration)
	assert.Equal(t, 1, cfg.Generation.Variants)
	assert.Equal(t, "16:9", cfg.Generation.AspectRatio)
	assert.Equal(t, "high", cfg.Generation.Quality)
	assert.True(t, cfg.Generation.IncludeAudio)

	// 轮询默认值
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval)
	assert.Zero(t, cfg.Poll.MaxAttempts)

	// Provider 默认值
	assert.Equal(t, "2024-08-01-preview", cfg.AzureFoundry.APIVersion)
	assert.Equal(t, "preview", cfg.AzureSora.APIVersion)
	assert.Equal(t, "https://api.openai.com", cfg.OpenAI.BaseURL)
	assert.Equal(t, "sora-2", cfg.OpenAI.Model)

	assert.Equal(t, "santa_video", cfg.Output.Prefix)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)
}
