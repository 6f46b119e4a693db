package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 查询参数里需要打码的 key
var sensitiveKeys = map[string]struct{}{
	"password": {}, "pwd": {}, "credential": {}, "token": {},
	"authorization": {}, "secret": {}, "key": {},
}

func maskQuery(kv map[string][]string) map[string][]string {
	out := make(map[string][]string, len(kv))
	for k, v := range kv {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			out[k] = []string{"****"}
			continue
		}
		out[k] = v
	}
	return out
}

// AccessLog 摘要：method/path/status/latency/ip/ua/query/size；请求体从不记录
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Any("query", maskQuery(c.Request.URL.Query())),
			zap.Int("size", c.Writer.Size()),
		}
		switch {
		case c.Writer.Status() >= 500:
			l.Error("HTTP", append(fields, zap.String("errors", c.Errors.String()))...)
		case len(c.Errors) > 0:
			l.Warn("HTTP", append(fields, zap.String("errors", c.Errors.String()))...)
		default:
			l.Info("HTTP", fields...)
		}
	}
}
