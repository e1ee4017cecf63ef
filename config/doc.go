// Package config 提供 santavideo 的配置管理功能。
//
// 配置来源依次为默认值、YAML 文件与 SANTAVIDEO_ 前缀的环境变量，
// 由 Loader 合并；Validate 在发起任何网络请求前校验所选 Provider 的必填项。
package config
