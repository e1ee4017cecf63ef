// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供 santavideo 测试的共享工具和辅助函数。

# 核心能力

  - 上下文辅助: TestContext / TestContextWithTimeout / CancelledContext，
    自动注册 Cleanup 防止泄漏
  - 文件辅助: WriteImage / ListDir，在临时目录中准备输入并检查输出
  - 数据工具: MustJSON

# 子包

  - testutil/mocks: MockProvider（video.Provider 的模拟实现），
    支持 Builder 模式、状态序列与分阶段错误注入

# 使用示例

	ctx := testutil.TestContext(t)
	provider := mocks.NewMockProvider().WithStatuses(video.StatusRunning, video.StatusSucceeded)
	gen := generator.New(provider, generator.WithPolling(0, 10))
	out, err := gen.Run(ctx, testutil.WriteImage(t, "scene.jpg"))
*/
package testutil
