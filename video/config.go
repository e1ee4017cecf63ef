package video

import "time"

// AzureFoundryConfig 配置单次调用形态的 Azure AI Foundry 视频端点.
type AzureFoundryConfig struct {
	Endpoint       string        `json:"endpoint" yaml:"endpoint"` // 完整的提交 URL
	APIKey         string        `json:"api_key" yaml:"api_key"`
	DeploymentName string        `json:"deployment_name" yaml:"deployment_name"`
	APIVersion     string        `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Timeout        time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"` // 0 表示不限制
}

// AzureSoraConfig 配置任务队列形态的 Azure OpenAI Sora 端点.
type AzureSoraConfig struct {
	Endpoint       string        `json:"endpoint" yaml:"endpoint"` // 资源根地址
	APIKey         string        `json:"api_key" yaml:"api_key"`
	DeploymentName string        `json:"deployment_name" yaml:"deployment_name"` // 作为 model 字段发送
	APIVersion     string        `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Timeout        time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// OpenAIConfig 配置 OpenAI 风格的 /v1/videos 端点.
type OpenAIConfig struct {
	BaseURL         string        `json:"base_url" yaml:"base_url"`
	APIKey          string        `json:"api_key" yaml:"api_key"`
	Model           string        `json:"model,omitempty" yaml:"model,omitempty"` // sora-2, sora-2-pro
	UseAPIKeyHeader bool          `json:"use_api_key_header,omitempty" yaml:"use_api_key_header,omitempty"`
	Timeout         time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultAzureFoundryConfig 返回单次调用形态的默认配置.
func DefaultAzureFoundryConfig() AzureFoundryConfig {
	return AzureFoundryConfig{
		APIVersion: "2024-08-01-preview",
	}
}

// DefaultAzureSoraConfig 返回任务队列形态的默认配置.
func DefaultAzureSoraConfig() AzureSoraConfig {
	return AzureSoraConfig{
		DeploymentName: "sora",
		APIVersion:     "preview",
	}
}

// DefaultOpenAIConfig 返回 OpenAI 视频 API 的默认配置.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		BaseURL: "https://api.openai.com",
		Model:   "sora-2",
	}
}
