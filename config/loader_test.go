// 配置加载器与校验测试。
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/santavideo/types"
)

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ProviderAzureSora, cfg.Provider)
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "santavideo.yaml")

	yamlContent := `
provider: azure-foundry

azure_foundry:
  endpoint: "https://foundry.example.com/video"
  api_key: "secret"
  deployment_name: "sora-foundry"

generation:
  duration: 5
  inpaint: false

poll:
  interval: 2s
  max_attempts: 30

output:
  dir: "/tmp/videos"

log:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderAzureFoundry, cfg.Provider)
	assert.Equal(t, "https://foundry.example.com/video", cfg.AzureFoundry.Endpoint)
	assert.Equal(t, "secret", cfg.AzureFoundry.APIKey)
	assert.Equal(t, "sora-foundry", cfg.AzureFoundry.DeploymentName)
	// 未出现在 YAML 中的字段保留默认值
	assert.Equal(t, "2024-08-01-preview", cfg.AzureFoundry.APIVersion)

	assert.Equal(t, 5, cfg.Generation.Duration)
	assert.False(t, cfg.Generation.Inpaint)
	assert.Equal(t, DefaultPrompt, cfg.Generation.Prompt)

	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 30, cfg.Poll.MaxAttempts)
	assert.Equal(t, "/tmp/videos", cfg.Output.Dir)
	assert.Equal(t, "santa_video", cfg.Output.Prefix)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "santavideo.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
provider: azure-sora
azure_sora:
  endpoint: "https://yaml.example.com"
  api_key: "from-yaml"
`), 0644))

	t.Setenv("SANTAVIDEO_AZURE_SORA_API_KEY", "from-env")
	t.Setenv("SANTAVIDEO_POLL_INTERVAL", "250ms")
	t.Setenv("SANTAVIDEO_GENERATION_INCLUDE_AUDIO", "false")
	t.Setenv("SANTAVIDEO_LOG_OUTPUT_PATHS", "stdout, /tmp/santavideo.log")

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://yaml.example.com", cfg.AzureSora.Endpoint)
	assert.Equal(t, "from-env", cfg.AzureSora.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Interval)
	assert.False(t, cfg.Generation.IncludeAudio)
	assert.Equal(t, []string{"stdout", "/tmp/santavideo.log"}, cfg.Log.OutputPaths)
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	t.Setenv("SV_PROVIDER", "openai")

	cfg, err := NewLoader().WithEnvPrefix("SV").Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
}

func TestLoader_InvalidEnvValue(t *testing.T) {
	t.Setenv("SANTAVIDEO_POLL_MAX_ATTEMPTS", "many")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SANTAVIDEO_POLL_MAX_ATTEMPTS")
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderAzureSora, cfg.Provider)
}

func TestLoader_MalformedYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("provider: [unterminated"), 0644))

	_, err := NewLoader().WithConfigPath(configPath).Load()
	require.Error(t, err)
}

func TestLoader_WithValidator(t *testing.T) {
	_, err := NewLoader().
		WithValidator(func(c *Config) error { return c.Validate() }).
		Load()
	require.Error(t, err)
	assert.Equal(t, types.ErrConfigMissing, types.GetErrorCode(err))
}

// --- Validate 测试 ---

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name: "azure sora complete",
			mutate: func(c *Config) {
				c.AzureSora.Endpoint = "https://sora.example.com"
				c.AzureSora.APIKey = "k"
			},
		},
		{
			name: "azure sora missing endpoint and key",
			mutate:  func(c *Config) {},
			wantErr: "azure_sora.endpoint, azure_sora.api_key",
		},
		{
			name: "azure foundry missing deployment",
			mutate: func(c *Config) {
				c.Provider = ProviderAzureFoundry
				c.AzureFoundry.Endpoint = "https://foundry.example.com"
				c.AzureFoundry.APIKey = "k"
			},
			wantErr: "azure_foundry.deployment_name",
		},
		{
			name: "openai missing key",
			mutate: func(c *Config) {
				c.Provider = ProviderOpenAI
			},
			wantErr: "openai.api_key",
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Provider = "runway"
			},
			wantErr: "unsupported provider: runway",
		},
		{
			name: "empty provider",
			mutate: func(c *Config) {
				c.Provider = ""
			},
			wantErr: "provider not configured",
		},
		{
			name: "empty prompt",
			mutate: func(c *Config) {
				c.Provider = ProviderOpenAI
				c.OpenAI.APIKey = "k"
				c.Generation.Prompt = ""
			},
			wantErr: "generation.prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, types.KindConfig, types.KindOf(err))
		})
	}
}
