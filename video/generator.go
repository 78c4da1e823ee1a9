package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/runwayflow"
	"github.com/BaSui01/runwayflow/internal/metrics"
)

// Generator 驱动单个生成任务的完整请求生命周期：编码输入、校验参数、
// 提交创建请求并轮询任务状态。不含可变共享状态，可并发使用。
type Generator struct {
	req       Requester
	cfg       Config
	logger    *zap.Logger
	collector *metrics.Collector
}

// NewGenerator 创建视频任务编排器。cfg 的零值字段使用包默认值，
// logger 为 nil 时使用 zap.NewNop()。
func NewGenerator(req Requester, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		req:       req,
		cfg:       cfg.withDefaults(),
		logger:    logger,
		collector: metrics.Default(),
	}
	g.logger.Info("video generator initialized", zap.String("model", g.cfg.Model))
	return g
}

// CreateVideoTask 校验参数、编码图像并提交一个 image-to-video 生成任务。
// 时长与宽高比校验发生在任何文件读取与网络 I/O 之前。Seed 为 nil 时
// 载荷中完全省略 seed 字段。
func (g *Generator) CreateVideoTask(ctx context.Context, req TaskRequest) (*CreateTaskResponse, error) {
	duration := req.Duration
	if duration == 0 {
		duration = g.cfg.Duration
	}
	ratio := req.Ratio
	if ratio == "" {
		ratio = g.cfg.Ratio
	}
	model := req.Model
	if model == "" {
		model = g.cfg.Model
	}
	watermark := req.Watermark || g.cfg.Watermark

	if !isValidDuration(duration) {
		return nil, &runwayflow.Error{
			Code:    runwayflow.ErrValidation,
			Message: fmt.Sprintf("duration must be either 5 or 10 seconds, got %d", duration),
		}
	}
	if !isValidRatio(ratio) {
		return nil, &runwayflow.Error{
			Code: runwayflow.ErrValidation,
			Message: fmt.Sprintf("invalid ratio %q, must be one of: %s",
				ratio, strings.Join(validRatios, ", ")),
		}
	}

	encoded, err := g.EncodeImage(req.ImagePath)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"model":        model,
		"prompt_image": encoded,
		"prompt_text":  req.PromptText,
		"duration":     duration,
		"ratio":        ratio,
		"watermark":    watermark,
	}
	if req.Seed != nil {
		payload["seed"] = *req.Seed
	}

	g.logger.Info("creating video task",
		zap.String("model", model),
		zap.Int("duration", duration),
		zap.String("ratio", ratio),
	)

	raw, err := g.req.Execute(ctx, http.MethodPost, "/image-to-video", payload)
	if err != nil {
		return nil, err
	}

	resp := &CreateTaskResponse{Raw: raw}
	// 防御式解码：字段不匹配时保留 Raw，不视为失败
	_ = json.Unmarshal(raw, resp)
	g.collector.RecordTaskCreated(model)

	taskID := resp.ID
	if taskID == "" {
		taskID = "unknown"
	}
	g.logger.Info("video task created", zap.String("task_id", taskID))
	return resp, nil
}

// GetTaskStatus 查询任务的当前状态快照。
func (g *Generator) GetTaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	raw, err := g.req.Execute(ctx, http.MethodGet, "/tasks/"+taskID, nil)
	if err != nil {
		return nil, err
	}
	status := &TaskStatus{Raw: raw}
	_ = json.Unmarshal(raw, status)
	return status, nil
}

// WaitForCompletion 以 Config.PollInterval 为间隔轮询任务状态，直到任务
// 进入终态或 Config.WaitTimeout 耗尽。返回值语义：
//
//   - completed → (true, 快照, nil)
//   - failed / canceled → (false, 快照, nil)，任务自身的失败不是本函数的错误
//   - 等待超时 → (false, {Status: "timeout"}, nil)，合成快照
//   - 状态查询本身出错 → (false, nil, err)，立即中止等待
//
// 轮询间隙通过 context 感知的定时等待实现，ctx 取消会立即中止。
func (g *Generator) WaitForCompletion(ctx context.Context, taskID string) (bool, *TaskStatus, error) {
	start := time.Now()
	deadline := start.Add(g.cfg.WaitTimeout)
	log := g.logger.With(zap.String("task_id", taskID))

	for time.Now().Before(deadline) {
		status, err := g.GetTaskStatus(ctx, taskID)
		if err != nil {
			return false, nil, err
		}
		g.collector.RecordTaskPoll(status.Status)
		log.Info("task status", zap.String("status", status.Status))

		switch status.Status {
		case StatusCompleted:
			log.Info("task completed successfully")
			g.collector.RecordTaskWait(StatusCompleted, time.Since(start))
			return true, status, nil
		case StatusFailed, StatusCanceled:
			log.Error("task reached terminal failure state",
				zap.String("status", status.Status),
				zap.String("reason", status.FailureReason()),
			)
			g.collector.RecordTaskWait(status.Status, time.Since(start))
			return false, status, nil
		}

		select {
		case <-ctx.Done():
			return false, nil, ctx.Err()
		case <-time.After(g.cfg.PollInterval):
		}
	}

	log.Warn("timeout waiting for task to complete",
		zap.Duration("timeout", g.cfg.WaitTimeout))
	g.collector.RecordTaskWait(StatusTimeout, time.Since(start))
	return false, &TaskStatus{Status: StatusTimeout}, nil
}
