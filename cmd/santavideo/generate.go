package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/santavideo/config"
	"github.com/BaSui01/santavideo/generator"
	"github.com/BaSui01/santavideo/internal/artifact"
	"github.com/BaSui01/santavideo/internal/metrics"
	"github.com/BaSui01/santavideo/internal/telemetry"
	"github.com/BaSui01/santavideo/types"
	"github.com/BaSui01/santavideo/video"
)

const imagePrompt = "Enter the path to your Christmas scene image: "

// =============================================================================
// 🎬 generate 命令
// =============================================================================

// runGenerate 执行一次完整的生成流程，返回进程退出码.
func runGenerate(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stdout)
	configPath := fs.String("config", "", "Path to config file")
	providerName := fs.String("provider", "", "Provider override (azure-foundry, azure-sora, openai)")
	outputDir := fs.String("output-dir", "", "Directory for the downloaded video")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(stdout, "Failed to load config: %v\n", err)
		return 1
	}
	if *providerName != "" {
		cfg.Provider = *providerName
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	fmt.Fprintln(stdout, "🎅 Santa Video Generator")
	fmt.Fprintln(stdout, strings.Repeat("=", 50))

	if err := cfg.Validate(); err != nil {
		reportError(stdout, err)
		return 1
	}

	logger := initLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting santavideo",
		zap.String("version", Version),
		zap.String("provider", cfg.Provider),
	)
	if cfg.Provider == config.ProviderAzureFoundry && cfg.AzureFoundry.DeploymentName != "" {
		logger.Info("foundry deployment", zap.String("deployment_name", cfg.AzureFoundry.DeploymentName))
	}

	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelProviders.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	imagePath := fs.Arg(0)
	if imagePath == "" {
		imagePath, err = promptImagePath(stdin, stdout)
		if err != nil {
			reportError(stdout, types.NewInputError("no image path provided", err))
			return 1
		}
	}

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		reportError(stdout, err)
		return 1
	}

	collector := metrics.NewCollector(cfg.Metrics.Namespace, logger)
	gen := generator.New(provider,
		generator.WithTemplate(templateFromConfig(cfg.Generation)),
		generator.WithPolling(cfg.Poll.Interval, cfg.Poll.MaxAttempts),
		generator.WithWriter(artifact.NewWriter(cfg.Output.Dir, cfg.Output.Prefix)),
		generator.WithMetrics(collector),
		generator.WithLogger(logger),
		generator.WithConsole(stdout),
	)

	ctx := context.Background()
	_, runErr := gen.Run(ctx, imagePath)

	if cfg.Metrics.Enabled {
		if err := collector.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			logger.Warn("failed to push metrics", zap.Error(err))
		}
	}

	if runErr != nil {
		reportError(stdout, runErr)
		return 1
	}
	return 0
}

// promptImagePath 交互式读取一行图片路径.
func promptImagePath(stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprint(stdout, imagePrompt)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	path := strings.TrimSpace(line)
	if path == "" {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return path, nil
}

// buildProvider 按配置创建 Provider 适配器.
func buildProvider(cfg *config.Config, logger *zap.Logger) (video.Provider, error) {
	switch cfg.Provider {
	case config.ProviderAzureFoundry:
		pc := video.DefaultAzureFoundryConfig()
		pc.Endpoint = cfg.AzureFoundry.Endpoint
		pc.APIKey = cfg.AzureFoundry.APIKey
		pc.DeploymentName = cfg.AzureFoundry.DeploymentName
		if cfg.AzureFoundry.APIVersion != "" {
			pc.APIVersion = cfg.AzureFoundry.APIVersion
		}
		pc.Timeout = cfg.HTTPTimeout
		return video.NewAzureFoundryProvider(pc, logger), nil
	case config.ProviderAzureSora:
		pc := video.DefaultAzureSoraConfig()
		pc.Endpoint = cfg.AzureSora.Endpoint
		pc.APIKey = cfg.AzureSora.APIKey
		if cfg.AzureSora.DeploymentName != "" {
			pc.DeploymentName = cfg.AzureSora.DeploymentName
		}
		if cfg.AzureSora.APIVersion != "" {
			pc.APIVersion = cfg.AzureSora.APIVersion
		}
		pc.Timeout = cfg.HTTPTimeout
		return video.NewAzureSoraProvider(pc, logger), nil
	case config.ProviderOpenAI:
		pc := video.DefaultOpenAIConfig()
		if cfg.OpenAI.BaseURL != "" {
			pc.BaseURL = cfg.OpenAI.BaseURL
		}
		pc.APIKey = cfg.OpenAI.APIKey
		if cfg.OpenAI.Model != "" {
			pc.Model = cfg.OpenAI.Model
		}
		pc.UseAPIKeyHeader = cfg.OpenAI.UseAPIKeyHeader
		pc.Timeout = cfg.HTTPTimeout
		return video.NewOpenAIProvider(pc, logger), nil
	default:
		return nil, types.NewConfigError("unsupported provider: " + cfg.Provider)
	}
}

func templateFromConfig(g config.GenerationConfig) generator.Template {
	return generator.Template{
		Prompt:       g.Prompt,
		Width:        g.Width,
		Height:       g.Height,
		Duration:     g.Duration,
		Variants:     g.Variants,
		AspectRatio:  g.AspectRatio,
		Quality:      g.Quality,
		Resolution:   g.Resolution,
		IncludeAudio: g.IncludeAudio,
		Inpaint:      g.Inpaint,
	}
}

// reportError 按错误码打印面向用户的提示.
func reportError(w io.Writer, err error) {
	e, ok := types.AsError(err)
	if !ok {
		fmt.Fprintf(w, "\n❌ Error: %v\n", err)
		return
	}

	switch e.Code {
	case types.ErrConfigMissing:
		fmt.Fprintln(w, "❌ Configuration missing!")
		fmt.Fprintf(w, "   %s\n", e.Message)
		fmt.Fprintln(w, "   Set the endpoint and API key in the config file or via SANTAVIDEO_* environment variables.")
	case types.ErrInputMissing:
		fmt.Fprintln(w, "❌ Image file not found!")
		fmt.Fprintf(w, "   %s\n", e.Message)
	case types.ErrSubmissionRejected:
		if e.HTTPStatus != 0 {
			fmt.Fprintf(w, "\n❌ Error: %d\n", e.HTTPStatus)
			fmt.Fprintf(w, "   Details: %s\n", e.Body)
		} else {
			fmt.Fprintf(w, "\n❌ Error: %s\n", e.Message)
		}
	case types.ErrGenerationFailed, types.ErrGenerationCancelled:
		fmt.Fprintln(w, "\n\n❌ Video generation failed.")
		fmt.Fprintf(w, "   %s\n", e.Message)
	case types.ErrGenerationTimedOut:
		fmt.Fprintln(w, "\n\n⏰ Timeout waiting for video generation.")
	case types.ErrDownloadFailed:
		fmt.Fprintf(w, "\n❌ Error downloading video: %v\n", err)
	default:
		fmt.Fprintf(w, "\n❌ Error: %v\n", err)
	}
}
