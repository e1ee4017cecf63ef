// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器，每个实例持有独立的 Registry
type Collector struct {
	registry *prometheus.Registry

	// 阶段指标（submit / poll / download）
	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec

	// 轮询指标
	pollAttempts *prometheus.CounterVec

	// 任务指标
	jobOutcomes *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec

	// 下载指标
	downloadBytes *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,
		logger:   logger.With(zap.String("component", "metrics")),
	}

	c.stageTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_requests_total",
			Help:      "Total number of outbound requests per job stage",
		},
		[]string{"provider", "stage", "result"},
	)

	c.stageDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Outbound request duration per job stage in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"provider", "stage"},
	)

	c.pollAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_attempts_total",
			Help:      "Total number of status polls by observed status",
		},
		[]string{"provider", "status"},
	)

	c.jobOutcomes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_outcomes_total",
			Help:      "Total number of finished runs by final state",
		},
		[]string{"provider", "state"},
	)

	c.jobDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time from submission to final state in seconds",
			Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"provider"},
	)

	c.downloadBytes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_bytes_total",
			Help:      "Total bytes of video downloaded",
		},
		[]string{"provider"},
	)

	logger.Debug("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// Registry 返回底层 Registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// =============================================================================
// 🎯 记录
// =============================================================================

// RecordStage 记录一次阶段请求
func (c *Collector) RecordStage(provider, stage string, err error, duration time.Duration) {
	c.stageTotal.WithLabelValues(provider, stage, result(err)).Inc()
	c.stageDuration.WithLabelValues(provider, stage).Observe(duration.Seconds())
}

// RecordPoll 记录一次轮询观察到的状态
func (c *Collector) RecordPoll(provider, status string) {
	c.pollAttempts.WithLabelValues(provider, status).Inc()
}

// RecordJob 记录一次运行的最终状态
func (c *Collector) RecordJob(provider, state string, duration time.Duration) {
	c.jobOutcomes.WithLabelValues(provider, state).Inc()
	c.jobDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordDownload 记录下载字节数
func (c *Collector) RecordDownload(provider string, bytes int) {
	c.downloadBytes.WithLabelValues(provider).Add(float64(bytes))
}

// =============================================================================
// 📤 推送
// =============================================================================

// Push 将当前 Registry 一次性推送到 Pushgateway
func (c *Collector) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(c.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	c.logger.Debug("metrics pushed", zap.String("url", url), zap.String("job", job))
	return nil
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
