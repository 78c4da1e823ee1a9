package config

import (
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/runwayflow/client"
	"github.com/BaSui01/runwayflow/video"
)

// Config 是本库的完整配置结构。
type Config struct {
	// Client 请求客户端配置
	Client ClientConfig `yaml:"client"`

	// Video 视频任务编排器配置
	Video VideoConfig `yaml:"video"`

	// Log 日志配置
	Log LogConfig `yaml:"log"`
}

// ClientConfig 请求客户端配置。
type ClientConfig struct {
	// API 密钥（留空则回退到 RUNWAYML_API_SECRET 环境变量）
	APIKey string `yaml:"api_key"`
	// API 基础地址
	BaseURL string `yaml:"base_url"`
	// X-Runway-Version header 值
	APIVersion string `yaml:"api_version"`
	// 单次请求超时
	Timeout time.Duration `yaml:"timeout"`
	// 客户端侧限流（请求/秒，0 表示关闭）
	RateLimit float64 `yaml:"rate_limit"`
	// 限流突发额度
	RateBurst int `yaml:"rate_burst"`
}

// VideoConfig 视频任务编排器配置。
type VideoConfig struct {
	// 生成模型
	Model string `yaml:"model"`
	// 视频时长（秒），5 或 10
	Duration int `yaml:"duration"`
	// 宽高比
	Ratio string `yaml:"ratio"`
	// 是否带水印
	Watermark bool `yaml:"watermark"`
	// 状态轮询间隔
	PollInterval time.Duration `yaml:"poll_interval"`
	// 最长等待时间
	WaitTimeout time.Duration `yaml:"wait_timeout"`
}

// LogConfig 日志配置。
type LogConfig struct {
	// 日志级别: debug/info/warn/error
	Level string `yaml:"level"`
	// 输出格式: json/console
	Format string `yaml:"format"`
}

// Default 返回完整的默认配置。
func Default() Config {
	return Config{
		Client: ClientConfig{
			BaseURL:    client.DefaultBaseURL,
			APIVersion: client.DefaultAPIVersion,
			Timeout:    60 * time.Second,
		},
		Video: VideoConfig{
			Model:        video.DefaultModel,
			Duration:     video.DefaultDuration,
			Ratio:        video.DefaultRatio,
			PollInterval: video.DefaultPollInterval,
			WaitTimeout:  video.DefaultWaitTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// ToClientConfig 转换为 client 包配置。
func (c Config) ToClientConfig() client.Config {
	return client.Config{
		APIKey:     c.Client.APIKey,
		BaseURL:    c.Client.BaseURL,
		APIVersion: c.Client.APIVersion,
		Timeout:    c.Client.Timeout,
		RateLimit:  c.Client.RateLimit,
		RateBurst:  c.Client.RateBurst,
	}
}

// ToVideoConfig 转换为 video 包配置。
func (c Config) ToVideoConfig() video.Config {
	return video.Config{
		Model:        c.Video.Model,
		Duration:     c.Video.Duration,
		Ratio:        c.Video.Ratio,
		Watermark:    c.Video.Watermark,
		PollInterval: c.Video.PollInterval,
		WaitTimeout:  c.Video.WaitTimeout,
	}
}

// NewLogger 按日志配置构建 zap 日志器，供宿主应用初始化一次后注入各组件。
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = level
	return zcfg.Build()
}
