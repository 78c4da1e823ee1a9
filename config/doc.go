/*
包 config 提供统一配置加载，支持 YAML 文件 + 环境变量覆盖。

使用方法:

	cfg, err := config.NewLoader().
	    WithConfigPath("runway.yaml").
	    WithEnvPrefix("RUNWAY").
	    Load()

配置优先级: 默认值 → YAML 文件 → 环境变量。RUNWAYML_API_SECRET 作为
凭据变量始终被识别，不受前缀约束。

包内还提供 NewLogger，按 LogConfig 构建宿主应用注入各组件的 zap 日志器。
*/
package config
