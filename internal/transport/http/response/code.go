package response

import (
	"net/http"

	"medical-records-api/internal/domain"
)

// 状态码直接使用 HTTP 语义
const (
	CodeOK              = http.StatusOK
	CodeCreated         = http.StatusCreated
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeTooLarge        = http.StatusRequestEntityTooLarge
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeServerError     = http.StatusInternalServerError
	CodeUnavailable     = http.StatusServiceUnavailable
	CodeTimeout         = http.StatusGatewayTimeout
)

// CodeMsgMap 默认错误文案，调用方没给 msg 时使用
var CodeMsgMap = map[int]string{
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeTooLarge:        "Request body too large",
	CodeTooManyRequests: "Too many requests",
	CodeServerError:     "Internal Server Error",
	CodeUnavailable:     "Server busy",
	CodeTimeout:         "Timeout",
}

// StatusOf 业务错误类型 → HTTP 状态；重复邮箱沿用 400
func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation, domain.KindConflict:
		return CodeBadRequest
	case domain.KindAuth:
		return CodeUnauthorized
	case domain.KindNotFound:
		return CodeNotFound
	default:
		return CodeServerError
	}
}
