/*
包 runwayflow 是 Runway ML 生成式视频 API 的 Go 客户端编排层。

# 概述

本库封装 Runway image-to-video 任务的完整请求生命周期：鉴权、请求提交、
任务状态轮询，直到任务进入终态或等待超时。

  - client — 带鉴权的请求客户端，负责与远端 API 的全部出站通信。
  - video — 视频任务编排器，负责图像编码、参数校验与轮询等待。
  - config — YAML + 环境变量配置加载与日志器构建。

根包只承载两类跨包共享能力：

  - ErrorCode / Error — 统一错误分类（配置、校验、传输等），对齐 HTTP
    状态、可重试性与诊断信息。
  - CredentialOverride — 单次请求内通过 context 覆盖 API 凭据。

典型用法：

	cli, err := client.New(client.Config{}, logger) // 凭据取自 RUNWAYML_API_SECRET
	if err != nil { ... }
	gen := video.NewGenerator(cli, video.Config{}, logger)
	resp, err := gen.CreateVideoTask(ctx, video.TaskRequest{
		ImagePath:  "input.png",
		PromptText: "camera slowly zooms in",
	})
	if err != nil { ... }
	ok, status, err := gen.WaitForCompletion(ctx, resp.ID)
*/
package runwayflow
