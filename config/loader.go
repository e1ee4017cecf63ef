// =============================================================================
// 📦 santavideo 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("santavideo.yaml").
//	    WithEnvPrefix("SANTAVIDEO").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/santavideo/types"
)

// 支持的 Provider 名称
const (
	ProviderAzureFoundry = "azure-foundry"
	ProviderAzureSora    = "azure-sora"
	ProviderOpenAI       = "openai"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config 是 santavideo 的完整配置结构
type Config struct {
	// Provider 选择的服务形态: azure-foundry, azure-sora, openai
	Provider string `yaml:"provider" env:"PROVIDER"`

	// AzureFoundry 单次调用形态（JSON body）
	AzureFoundry AzureConfig `yaml:"azure_foundry" env:"AZURE_FOUNDRY"`

	// AzureSora 任务队列形态（multipart）
	AzureSora AzureConfig `yaml:"azure_sora" env:"AZURE_SORA"`

	// OpenAI 视频 API 形态
	OpenAI OpenAIConfig `yaml:"openai" env:"OPENAI"`

	// Generation 固定生成参数
	Generation GenerationConfig `yaml:"generation" env:"GENERATION"`

	// Poll 轮询参数
	Poll PollConfig `yaml:"poll" env:"POLL"`

	// Output 输出文件配置
	Output OutputConfig `yaml:"output" env:"OUTPUT"`

	// HTTPTimeout 单次请求超时，0 表示不限制
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT"`

	// Log 日志配置
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics 指标配置
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`

	// Telemetry 遥测配置
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// AzureConfig Azure 端点配置
type AzureConfig struct {
	// 资源端点
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
	// API Key
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 部署名称（同时作为 model 字段发送）
	DeploymentName string `yaml:"deployment_name" env:"DEPLOYMENT_NAME"`
	// API 版本
	APIVersion string `yaml:"api_version" env:"API_VERSION"`
}

// OpenAIConfig OpenAI 视频 API 配置
type OpenAIConfig struct {
	// 基础 URL
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// API Key
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 模型名称
	Model string `yaml:"model" env:"MODEL"`
	// 使用 api-key 头代替 Bearer（Azure 托管的 OpenAI 兼容端点）
	UseAPIKeyHeader bool `yaml:"use_api_key_header" env:"USE_API_KEY_HEADER"`
}

// GenerationConfig 生成参数
type GenerationConfig struct {
	// 提示词
	Prompt string `yaml:"prompt" env:"PROMPT"`
	// 输出宽度
	Width int `yaml:"width" env:"WIDTH"`
	// 输出高度
	Height int `yaml:"height" env:"HEIGHT"`
	// 时长（秒）
	Duration int `yaml:"duration" env:"DURATION"`
	// 变体数量
	Variants int `yaml:"variants" env:"VARIANTS"`
	// 宽高比
	AspectRatio string `yaml:"aspect_ratio" env:"ASPECT_RATIO"`
	// 质量
	Quality string `yaml:"quality" env:"QUALITY"`
	// 分辨率（OpenAI 形态，例如 1280x720）
	Resolution string `yaml:"resolution" env:"RESOLUTION"`
	// 是否生成音频
	IncludeAudio bool `yaml:"include_audio" env:"INCLUDE_AUDIO"`
	// 是否将首帧锚定到源图像
	Inpaint bool `yaml:"inpaint" env:"INPAINT"`
}

// PollConfig 轮询配置
type PollConfig struct {
	// 轮询间隔
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
	// 最大轮询次数，0 表示使用 Provider 默认值
	MaxAttempts int `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	// 输出目录，空表示当前工作目录
	Dir string `yaml:"dir" env:"DIR"`
	// 文件名前缀
	Prefix string `yaml:"prefix" env:"PREFIX"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// 输出格式: json, console
	Format string `yaml:"format" env:"FORMAT"`
	// 输出路径
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// 指标命名空间
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
	// Pushgateway 地址，空表示不推送
	PushgatewayURL string `yaml:"pushgateway_url" env:"PUSHGATEWAY_URL"`
	// Pushgateway job 名称
	Job string `yaml:"job" env:"JOB"`
}

// TelemetryConfig 遥测配置
type TelemetryConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLP 端点
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	// 服务名称
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
	// 采样率
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// =============================================================================
// 🔧 配置加载器
// =============================================================================

// Loader 配置加载器（Builder 模式）
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader 创建新的配置加载器
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "SANTAVIDEO",
		validators: make([]func(*Config) error, 0),
	}
}

// WithConfigPath 设置配置文件路径
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator 添加配置验证器
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 加载配置
// 优先级: 默认值 → YAML 文件 → 环境变量
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile 从 YAML 文件加载配置
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 文件不存在，使用默认值
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadFromEnv 从环境变量加载配置
func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

// setFieldsFromEnv 递归设置结构体字段
func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

// setFieldValue 设置字段值
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// time.Duration 按时长字符串解析
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		// 逗号分隔的字符串切片
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// =============================================================================
// 🔍 校验
// =============================================================================

// Validate 检查所选 Provider 的必填项。
// 返回的错误码为 types.ErrConfigMissing，在任何网络调用之前触发。
func (c *Config) Validate() error {
	var missing []string

	switch c.Provider {
	case ProviderAzureFoundry:
		missing = c.AzureFoundry.missing("azure_foundry")
	case ProviderAzureSora:
		missing = c.AzureSora.missing("azure_sora")
	case ProviderOpenAI:
		if c.OpenAI.BaseURL == "" {
			missing = append(missing, "openai.base_url")
		}
		if c.OpenAI.APIKey == "" {
			missing = append(missing, "openai.api_key")
		}
		if c.OpenAI.Model == "" {
			missing = append(missing, "openai.model")
		}
	case "":
		return types.NewConfigError("provider not configured")
	default:
		return types.NewConfigError(fmt.Sprintf("unsupported provider: %s (supported: %s, %s, %s)",
			c.Provider, ProviderAzureFoundry, ProviderAzureSora, ProviderOpenAI))
	}

	if c.Generation.Prompt == "" {
		missing = append(missing, "generation.prompt")
	}
	if c.Poll.Interval < 0 {
		missing = append(missing, "poll.interval (must not be negative)")
	}
	if c.Poll.MaxAttempts < 0 {
		missing = append(missing, "poll.max_attempts (must not be negative)")
	}

	if len(missing) > 0 {
		return types.NewConfigError("configuration missing: " + strings.Join(missing, ", ")).
			WithProvider(c.Provider)
	}
	return nil
}

func (a AzureConfig) missing(section string) []string {
	var out []string
	if a.Endpoint == "" {
		out = append(out, section+".endpoint")
	}
	if a.APIKey == "" {
		out = append(out, section+".api_key")
	}
	if a.DeploymentName == "" {
		out = append(out, section+".deployment_name")
	}
	return out
}
