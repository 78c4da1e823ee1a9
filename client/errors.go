package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/BaSui01/runwayflow"
)

// MapHTTPError 将非 2xx 的 HTTP 状态码映射为带有合适重试标记的
// *runwayflow.Error。body 为原始响应体文本，随错误一并携带用于诊断。
func MapHTTPError(status int, msg, body string) *runwayflow.Error {
	e := &runwayflow.Error{
		Message:    msg,
		HTTPStatus: status,
		Body:       body,
	}
	switch status {
	case http.StatusUnauthorized:
		e.Code = runwayflow.ErrUnauthorized
	case http.StatusForbidden:
		e.Code = runwayflow.ErrForbidden
	case http.StatusTooManyRequests:
		e.Code = runwayflow.ErrRateLimited
		e.Retryable = true
	case http.StatusBadRequest:
		e.Code = runwayflow.ErrValidation
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		e.Code = runwayflow.ErrUpstreamTimeout
		e.Retryable = true
	default:
		e.Code = runwayflow.ErrUpstreamError
		e.Retryable = status >= 500
	}
	return e
}

// ReadErrorMessage 从错误响应体中提取可读消息。优先解析 JSON 错误结构，
// 失败则回退到原始文本。
func ReadErrorMessage(data []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil {
		if errResp.Error != "" && errResp.Message != "" {
			return fmt.Sprintf("%s: %s", errResp.Error, errResp.Message)
		}
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return string(data)
}
