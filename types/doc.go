// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供 santavideo 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 video、generator、config
与 cmd 提供统一的错误契约。

# 核心类型

  - Error / ErrorCode：结构化错误，含 HTTP 状态码、Provider 标记与根因
  - ErrorKind：错误大类（config / input / submission / polling / download）

# 主要能力

  - 错误构造：NewError / NewConfigError / NewInputError / NewSubmissionError 等
  - 错误探测：GetErrorCode / KindOf / AsError
*/
package types
