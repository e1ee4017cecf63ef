// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 video 提供图生视频任务的统一 Provider 适配层，覆盖同一概念服务的三种
接口形态：Azure AI Foundry 单次调用、Azure OpenAI Sora 任务队列与 OpenAI
/v1/videos。

# 概述

所有形态都遵循"提交 → 轮询 → 下载"协议。Provider 只负责单次网络交互与
状态词汇归一化，轮询循环与文件落盘由上层 generator 包负责。

# 核心接口

  - Provider：Submit()、Poll()、ResolveDownloadURL()、Download() 与
    DefaultMaxAttempts()。
  - GenerationRequest / Image / InpaintItem：不可变的生成请求。
  - Job / StatusUpdate / JobStatus：远端任务及其单向前进的状态机。
  - Submission：待轮询的任务或可直接下载的内联结果。

# 主要能力

  - 状态归一化：succeeded/completed、cancelled/canceled 等异构词汇统一为
    JobStatus，未知词汇视为 running。
  - MIME 推断：jpg/jpeg/png/webp，其他扩展名回退到 image/jpeg。
  - 错误分类：所有失败以 types.Error 返回，按 submission/polling/download 归类。
*/
package video
