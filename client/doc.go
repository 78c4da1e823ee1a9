/*
包 client 提供带鉴权的 Runway API 请求客户端，是本库所有出站通信的
唯一入口。

# 核心类型

  - Config — 客户端配置（APIKey、BaseURL、APIVersion、Timeout、限流参数），
    零值字段在 New 中填充默认值。
  - Client — 请求客户端。凭据在构造时解析一次（显式参数优先，回退到
    RUNWAYML_API_SECRET 环境变量），此后不可变。

# 主要能力

  - Execute — 针对固定 BaseURL 派发 GET/POST/PUT/DELETE；GET 的载荷作为
    查询参数发送，其余动词作为 JSON 请求体。非 2xx 响应映射为携带原始
    状态码与响应体的 *runwayflow.Error。
  - BuildHeaders — 构建 Bearer 鉴权与 JSON 内容协商 header 的纯函数。
  - CheckStatus — 尽力而为的健康探测，任何失败都归约为 false，从不向
    调用方传播错误。
  - 可选的客户端侧限流（golang.org/x/time/rate），避免触发上游 429。

Client 不含可变共享状态，多 goroutine 可并发使用同一实例。
*/
package client
