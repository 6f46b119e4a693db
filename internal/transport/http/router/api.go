package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"medical-records-api/internal/core/config"
	"medical-records-api/internal/core/server"
	mdw "medical-records-api/internal/transport/http/middleware"
)

// commonMiddleware 两个引擎共用的链路
func commonMiddleware(l *zap.Logger, c config.HTTP) []gin.HandlerFunc {
	timeout := time.Duration(c.RequestTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := mdw.RateLimit
	if c.RateLimitPerIP {
		limit = mdw.RateLimitPerIP
	}
	return []gin.HandlerFunc{
		mdw.RequestID(),
		limit(rate.Limit(c.RateLimitRPS), c.RateLimitBurst),
		mdw.ConcurrencyLimit(max(1, c.MaxInFlight)),
		mdw.MaxBodyBytes(max(1024, c.MaxBodyBytes)),
		mdw.Timeout(timeout),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	}
}

// NewAPIEngine 用户端：/api/*、/health、/metrics
func NewAPIEngine(l *zap.Logger, c config.HTTP, mods ...APIModule) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(commonMiddleware(l, c)...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	MountAPI(r.Group("/api"), mods...)
	return r
}
