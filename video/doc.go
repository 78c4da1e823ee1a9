/*
包 video 提供 Runway image-to-video 任务的编排器：图像编码、参数校验、
任务创建与状态轮询。

# 核心类型

  - Generator — 视频任务编排器，依赖 Requester 端口完成全部网络通信。
  - Requester — 请求客户端抽象，由 client.Client 实现；测试可注入假实现。
  - TaskRequest — 一次生成任务的全部参数，零值字段回退到 Config 默认值。
  - CreateTaskResponse / TaskStatus — 按端点的显式响应类型，防御式解码，
    同时保留原始 JSON（Raw）供调用方透传。

# 任务生命周期

	CreateVideoTask → 任务标识 → GetTaskStatus（反复）→ 终态或超时

WaitForCompletion 以固定间隔轮询直到任务进入 completed / failed /
canceled 终态；等待可通过 context 取消，超时返回合成的 timeout 快照。
校验失败（非法时长或宽高比）发生在任何文件与网络 I/O 之前。
*/
package video
