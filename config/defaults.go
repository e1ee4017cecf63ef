// =============================================================================
// 📦 santavideo 默认配置
// =============================================================================
package config

import "time"

// DefaultPrompt 是固定的圣诞老人视频提示词
const DefaultPrompt = "Santa Claus magically appears in the Christmas scene, walks gracefully to the Christmas tree " +
	"with a bag of presents, carefully places beautifully wrapped gifts underneath the tree, steps back to admire " +
	"his work with a warm smile, waves goodbye, and disappears in a shower of festive sparkles and twinkling lights. " +
	"The scene is warm, magical, and filled with holiday spirit."

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderAzureSora,
		AzureFoundry: DefaultAzureFoundryConfig(),
		AzureSora:    DefaultAzureSoraConfig(),
		OpenAI:       DefaultOpenAIConfig(),
		Generation:   DefaultGenerationConfig(),
		Poll:         DefaultPollConfig(),
		Output:       DefaultOutputConfig(),
		Log:          DefaultLogConfig(),
		Metrics:      DefaultMetricsConfig(),
		Telemetry:    DefaultTelemetryConfig(),
	}
}

// DefaultAzureFoundryConfig 返回单次调用形态的默认配置
func DefaultAzureFoundryConfig() AzureConfig {
	return AzureConfig{
		APIVersion: "2024-08-01-preview",
	}
}

// DefaultAzureSoraConfig 返回任务队列形态的默认配置
func DefaultAzureSoraConfig() AzureConfig {
	return AzureConfig{
		DeploymentName: "sora",
		APIVersion:     "preview",
	}
}

// DefaultOpenAIConfig 返回 OpenAI 视频 API 默认配置
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		BaseURL: "https://api.openai.com",
		Model:   "sora-2",
	}
}

// DefaultGenerationConfig 返回默认生成参数
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Prompt:       DefaultPrompt,
		Width:        1280,
		Height:       720,
		Duration:     10,
		Variants:     1,
		AspectRatio:  "16:9",
		Quality:      "high",
		Resolution:   "1280x720",
		IncludeAudio: true,
		Inpaint:      true,
	}
}

// DefaultPollConfig 返回默认轮询配置
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Interval:    5 * time.Second,
		MaxAttempts: 0,
	}
}

// DefaultOutputConfig 返回默认输出配置
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:    "",
		Prefix: "santa_video",
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{"stderr"},
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "santavideo",
		Job:       "santavideo",
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "santavideo",
		SampleRate:   1.0,
	}
}
