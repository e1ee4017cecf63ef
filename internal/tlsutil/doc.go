// Package tlsutil 提供集中式 TLS 配置，
// 为视频服务商的 HTTP 客户端提供安全加固的传输层（TLS 1.2+，仅 AEAD 密码套件），
// 并支持为每个请求注入关联 ID 等固定请求头。
package tlsutil
