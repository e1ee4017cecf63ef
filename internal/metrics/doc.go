// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的视频任务指标采集能力，覆盖提交、
轮询、下载三个阶段与任务最终状态。

# 概述

每个 Collector 持有独立的 prometheus.Registry，通过 promauto.With
注册指标，避免全局注册冲突。CLI 是短生命周期进程，因此指标在运行结束时
经 Pushgateway 一次性推送，而不是暴露 /metrics 端点。

# 核心类型

  - Collector：指标收集器，持有 Counter 与 Histogram 向量指标。

# 主要能力

  - 阶段指标：按 provider/stage/result 统计请求数与耗时。
  - 轮询指标：按 provider/status 统计轮询次数。
  - 任务指标：按 provider/state 统计最终状态与总耗时。
  - 下载指标：按 provider 统计下载字节数。
  - 推送：Push 调用 prometheus/push 推送到 Pushgateway。
*/
package metrics
