package video

import "time"

const (
	// DefaultModel 是未显式指定模型时使用的生成模型。
	DefaultModel = "gen4_turbo"

	// DefaultDuration 是默认视频时长（秒）。
	DefaultDuration = 5

	// DefaultRatio 是默认宽高比。
	DefaultRatio = "1280:720"

	// DefaultPollInterval 是状态轮询间隔。
	DefaultPollInterval = 5 * time.Second

	// DefaultWaitTimeout 是 WaitForCompletion 的最长等待时间。
	DefaultWaitTimeout = 300 * time.Second
)

// validDurations 是远端接受的视频时长（秒）。
var validDurations = []int{5, 10}

// validRatios 是远端接受的宽高比全集。
var validRatios = []string{
	"1280:720",
	"720:1280",
	"1104:832",
	"832:1104",
	"960:960",
	"1584:672",
}

// ValidDurations 返回接受的视频时长集合的副本。
func ValidDurations() []int {
	out := make([]int, len(validDurations))
	copy(out, validDurations)
	return out
}

// ValidRatios 返回接受的宽高比集合的副本。
func ValidRatios() []string {
	out := make([]string, len(validRatios))
	copy(out, validRatios)
	return out
}

// Config 配置视频任务编排器。零值字段使用包默认值。
type Config struct {
	Model        string        `json:"model,omitempty" yaml:"model,omitempty"`
	Duration     int           `json:"duration,omitempty" yaml:"duration,omitempty"`
	Ratio        string        `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Watermark    bool          `json:"watermark" yaml:"watermark"`
	PollInterval time.Duration `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
	WaitTimeout  time.Duration `json:"wait_timeout,omitempty" yaml:"wait_timeout,omitempty"`
}

// DefaultConfig 返回默认编排器配置。
func DefaultConfig() Config {
	return Config{
		Model:        DefaultModel,
		Duration:     DefaultDuration,
		Ratio:        DefaultRatio,
		PollInterval: DefaultPollInterval,
		WaitTimeout:  DefaultWaitTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Ratio == "" {
		c.Ratio = DefaultRatio
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.WaitTimeout <= 0 {
		c.WaitTimeout = DefaultWaitTimeout
	}
	return c
}

func isValidDuration(d int) bool {
	for _, v := range validDurations {
		if d == v {
			return true
		}
	}
	return false
}

func isValidRatio(r string) bool {
	for _, v := range validRatios {
		if r == v {
			return true
		}
	}
	return false
}
