package video

import (
	"context"
	"encoding/json"
)

// 任务终态。中间状态（排队、渲染中等）由远端定义，本库不枚举。
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"

	// StatusTimeout 是等待超时时的合成状态，远端永远不会产生该值。
	StatusTimeout = "timeout"
)

// Requester 是编排器使用的请求客户端端口，由 client.Client 实现。
// 测试可注入记录调用的假实现。
type Requester interface {
	Execute(ctx context.Context, method, endpoint string, payload map[string]any) (json.RawMessage, error)
}

// TaskRequest 定义一次 image-to-video 生成任务的参数。
// 零值字段（Duration、Ratio、Model）回退到 Config 默认值。
type TaskRequest struct {
	// ImagePath 是本地图像文件路径（jpg/jpeg/png）。
	ImagePath string

	// PromptText 描述期望的画面运动。
	PromptText string

	// Duration 是视频时长（秒），必须为 5 或 10。
	Duration int

	// Ratio 是宽高比，必须属于 ValidRatios。
	Ratio string

	// Model 是生成模型标识。
	Model string

	// Seed 是可复现性种子；为 nil 时整个字段从载荷中省略（而非发送 null）。
	Seed *int64

	// Watermark 控制是否带 Runway 水印。
	Watermark bool
}

// CreateTaskResponse 是任务创建端点的显式响应类型。远端响应防御式解码：
// 缺失的任务标识不视为错误，Raw 始终保留完整原始 JSON。
type CreateTaskResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// TaskStatus 是任务状态端点的显式响应类型。除 Status 外的字段均为
// 远端可选提供，缺失时保持零值；Raw 保留完整原始 JSON 供调用方透传。
type TaskStatus struct {
	ID     string   `json:"id,omitempty"`
	Status string   `json:"status"`
	Output []string `json:"output,omitempty"`

	// Failure / FailureCode 是任务失败时远端附带的错误描述。
	Failure     string `json:"failure,omitempty"`
	FailureCode string `json:"failureCode,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Terminal 报告该快照是否处于终态（含合成的 timeout）。
func (s *TaskStatus) Terminal() bool {
	switch s.Status {
	case StatusCompleted, StatusFailed, StatusCanceled, StatusTimeout:
		return true
	}
	return false
}

// FailureReason 返回失败描述，无法确定时返回占位文本。
func (s *TaskStatus) FailureReason() string {
	if s.Failure != "" {
		return s.Failure
	}
	if s.FailureCode != "" {
		return s.FailureCode
	}
	return "unknown error"
}
