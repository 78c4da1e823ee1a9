package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/runwayflow"
	"github.com/BaSui01/runwayflow/client"
)

// DefaultEnvPrefix 是环境变量覆盖的默认前缀。
const DefaultEnvPrefix = "RUNWAY"

// Loader 按「默认值 → YAML → 环境变量」的优先级加载配置。
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader 创建配置加载器。
func NewLoader() *Loader {
	return &Loader{envPrefix: DefaultEnvPrefix}
}

// WithConfigPath 指定 YAML 配置文件路径。为空则跳过文件加载。
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 指定环境变量前缀（默认 RUNWAY）。
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	if prefix != "" {
		l.envPrefix = prefix
	}
	return l
}

// Load 执行加载并返回合并后的配置。
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, &runwayflow.Error{
				Code:    runwayflow.ErrConfiguration,
				Message: fmt.Sprintf("reading config file %s: %v", l.configPath, err),
			}
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &runwayflow.Error{
				Code:    runwayflow.ErrConfiguration,
				Message: fmt.Sprintf("parsing config file %s: %v", l.configPath, err),
			}
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv 应用环境变量覆盖。RUNWAYML_API_SECRET 不受前缀约束。
func (l *Loader) applyEnv(cfg *Config) error {
	if v := os.Getenv(client.EnvAPISecret); v != "" {
		cfg.Client.APIKey = v
	}
	if v, ok := l.lookup("API_KEY"); ok {
		cfg.Client.APIKey = v
	}
	if v, ok := l.lookup("BASE_URL"); ok {
		cfg.Client.BaseURL = v
	}
	if v, ok := l.lookup("API_VERSION"); ok {
		cfg.Client.APIVersion = v
	}
	if err := l.duration("TIMEOUT", &cfg.Client.Timeout); err != nil {
		return err
	}
	if v, ok := l.lookup("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return l.parseError("RATE_LIMIT", v, err)
		}
		cfg.Client.RateLimit = f
	}
	if v, ok := l.lookup("RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return l.parseError("RATE_BURST", v, err)
		}
		cfg.Client.RateBurst = n
	}

	if v, ok := l.lookup("MODEL"); ok {
		cfg.Video.Model = v
	}
	if v, ok := l.lookup("DURATION"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return l.parseError("DURATION", v, err)
		}
		cfg.Video.Duration = n
	}
	if v, ok := l.lookup("RATIO"); ok {
		cfg.Video.Ratio = v
	}
	if v, ok := l.lookup("WATERMARK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return l.parseError("WATERMARK", v, err)
		}
		cfg.Video.Watermark = b
	}
	if err := l.duration("POLL_INTERVAL", &cfg.Video.PollInterval); err != nil {
		return err
	}
	if err := l.duration("WAIT_TIMEOUT", &cfg.Video.WaitTimeout); err != nil {
		return err
	}

	if v, ok := l.lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := l.lookup("LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	return nil
}

func (l *Loader) lookup(key string) (string, bool) {
	return os.LookupEnv(l.envPrefix + "_" + key)
}

func (l *Loader) duration(key string, out *time.Duration) error {
	v, ok := l.lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return l.parseError(key, v, err)
	}
	*out = d
	return nil
}

func (l *Loader) parseError(key, value string, err error) error {
	return &runwayflow.Error{
		Code:    runwayflow.ErrConfiguration,
		Message: fmt.Sprintf("invalid %s_%s value %q: %v", l.envPrefix, key, value, err),
	}
}
