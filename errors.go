package runwayflow

import "errors"

// 统一的客户端错误码，用于对齐 HTTP 状态、可重试性与诊断策略。
type ErrorCode string

const (
	ErrConfiguration     ErrorCode = "RUNWAY_CONFIGURATION"      // 缺失/无效凭据或配置
	ErrValidation        ErrorCode = "RUNWAY_VALIDATION"         // 参数校验失败（时长/比例）
	ErrNotFound          ErrorCode = "RUNWAY_NOT_FOUND"          // 本地图像文件不存在
	ErrUnsupportedFormat ErrorCode = "RUNWAY_UNSUPPORTED_FORMAT" // 不支持的图像扩展名
	ErrUnsupportedMethod ErrorCode = "RUNWAY_UNSUPPORTED_METHOD" // 非法 HTTP 动词（内部误用）
	ErrUnauthorized      ErrorCode = "RUNWAY_UNAUTHORIZED"       // 未授权或密钥失效
	ErrForbidden         ErrorCode = "RUNWAY_FORBIDDEN"          // 权限或内容策略拒绝
	ErrRateLimited       ErrorCode = "RUNWAY_RATE_LIMITED"       // 上游限流
	ErrUpstreamTimeout   ErrorCode = "RUNWAY_UPSTREAM_TIMEOUT"   // 上游超时
	ErrUpstreamError     ErrorCode = "RUNWAY_UPSTREAM_ERROR"     // 上游 5xx/网络/解析错误
)

// Error 是本库所有组件共享的错误类型。传输类错误会携带原始 HTTP 状态码
// 与响应体文本，便于调用方诊断。
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Body       string    `json:"body,omitempty"` // 非 2xx 响应的原始响应体
	Retryable  bool      `json:"retryable"`
}

func (e *Error) Error() string { return e.Message }

// IsCode 判断 err（或其包装链）是否为携带指定错误码的 *Error。
func IsCode(err error, code ErrorCode) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
