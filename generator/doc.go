/*
Package generator 编排一次 Santa 视频生成运行：加载图片、提交、轮询、下载并落盘。

所有阶段顺序执行，唯一的循环是受 max_attempts 约束的状态轮询。
每个阶段都会记录 Prometheus 指标与 OpenTelemetry span，并通过
X-Client-Request-Id 头传播同一个运行 ID。
*/
package generator
