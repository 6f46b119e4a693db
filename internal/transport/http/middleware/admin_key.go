package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	resp "medical-records-api/internal/transport/http/response"
)

const HeaderAdminKey = "X-Admin-Key"

// AdminKey 静态共享密钥；key 为空时管理接口整体关闭
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(resp.CodeForbidden, resp.Error(resp.CodeForbidden, "admin api disabled"))
			return
		}
		got := c.GetHeader(HeaderAdminKey)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(resp.CodeUnauthorized, resp.Error(resp.CodeUnauthorized, ""))
			return
		}
		c.Next()
	}
}
