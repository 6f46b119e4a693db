package response

// ErrorBody 失败响应统一 {"error": "..."}；成功响应直接返回数据本身
type ErrorBody struct {
	Error string `json:"error"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) ErrorBody {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return ErrorBody{Error: msg}
}
