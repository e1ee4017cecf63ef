// =============================================================================
// Santa Video Generator 主入口
// =============================================================================
// 上传一张圣诞场景图片，生成圣诞老人出场的视频并保存到本地
//
// 使用方法:
//
//	santavideo generate                          # 交互式输入图片路径
//	santavideo generate scene.jpg                # 直接指定图片
//	santavideo generate --config config.yaml scene.jpg
//	santavideo generate --provider openai scene.jpg
//	santavideo version                           # 显示版本信息
// =============================================================================

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/santavideo/config"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		os.Exit(runGenerate(os.Args[2:], os.Stdin, os.Stdout))
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion() {
	fmt.Printf("santavideo %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`santavideo - Santa Video Generator

Usage:
  santavideo <command> [options]

Commands:
  generate  Generate a Santa video from a Christmas scene image
  version   Show version information
  help      Show this help message

Options for 'generate':
  --config <path>       Path to configuration file (YAML)
  --provider <name>     azure-foundry, azure-sora or openai
  --output-dir <dir>    Directory for the downloaded video

Environment:
  SANTAVIDEO_PROVIDER, SANTAVIDEO_AZURE_SORA_ENDPOINT, SANTAVIDEO_AZURE_SORA_API_KEY,
  SANTAVIDEO_OPENAI_API_KEY, ... (any config key, upper-cased with _ separators)

Examples:
  santavideo generate scene.jpg
  santavideo generate --config /etc/santavideo/config.yaml scene.jpg
  santavideo generate --provider openai --output-dir ./videos scene.png
  santavideo version`)
}

// =============================================================================
// 🔧 日志初始化
// =============================================================================

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	logger, err := zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		// 回退到基本 logger
		logger, _ = zap.NewProduction()
	}

	return logger
}
