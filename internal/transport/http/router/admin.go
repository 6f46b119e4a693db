package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medical-records-api/internal/core/config"
	mdw "medical-records-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：/admin/v1/* 统一要求 X-Admin-Key
func NewAdminEngine(l *zap.Logger, c config.HTTP, adminKey string, mods ...AdminModule) *gin.Engine {
	r := gin.New()
	r.Use(commonMiddleware(l, c)...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AdminKey(adminKey))
	MountAdmin(admin, mods...)
	return r
}
