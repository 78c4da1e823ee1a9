// Package metrics provides internal metrics collection for the Runway client.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector 指标收集器：覆盖出站 API 请求与视频任务生命周期。
type Collector struct {
	// API 请求指标
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec

	// 视频任务指标
	tasksCreatedTotal *prometheus.CounterVec
	taskPollsTotal    *prometheus.CounterVec
	taskWaitDuration  *prometheus.HistogramVec

	logger *zap.Logger
}

// NewCollector 创建指标收集器。reg 为 nil 时使用默认注册表。
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.apiRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of outbound Runway API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	c.apiRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Outbound Runway API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	c.tasksCreatedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Total number of video generation tasks created",
		},
		[]string{"model"},
	)

	c.taskPollsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_polls_total",
			Help:      "Total number of task status polls, by observed status",
		},
		[]string{"status"},
	)

	c.taskWaitDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_wait_duration_seconds",
			Help:      "Time spent waiting for task completion, by outcome",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"outcome"},
	)

	return c
}

var (
	defaultOnce      sync.Once
	defaultCollector *Collector
)

// Default 返回进程级默认收集器（默认 Prometheus 注册表，namespace
// "runwayflow"），首次调用时初始化。
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = NewCollector("runwayflow", nil, nil)
	})
	return defaultCollector
}

// RecordAPIRequest 记录一次出站 API 请求。status 为 0 表示传输层失败。
func (c *Collector) RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	c.apiRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	c.apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTaskCreated 记录一次任务创建。
func (c *Collector) RecordTaskCreated(model string) {
	c.tasksCreatedTotal.WithLabelValues(model).Inc()
}

// RecordTaskPoll 记录一次状态轮询及其观察到的状态。
func (c *Collector) RecordTaskPoll(status string) {
	if status == "" {
		status = "unknown"
	}
	c.taskPollsTotal.WithLabelValues(status).Inc()
}

// RecordTaskWait 记录一次完整等待及其结果（completed/failed/canceled/timeout）。
func (c *Collector) RecordTaskWait(outcome string, duration time.Duration) {
	c.taskWaitDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
