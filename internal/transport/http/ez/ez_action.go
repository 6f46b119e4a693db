package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medical-records-api/internal/domain"
	resp "medical-records-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 从 JSON body 绑定
	BindNone Binder = "none" // 不绑定，自己从 c.Param 取
)

// Action 一个接口的声明：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET | POST | PUT | DELETE
	Path    string // 例："/patients/:id/reports"
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 绑定入参 → 执行 → 统一错误映射
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		default:
		}
		if bindErr != nil {
			writeBindError(c, bindErr)
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteError(c, err)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func writeBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(resp.CodeTooLarge, resp.Error(resp.CodeTooLarge, ""))
		return
	}
	c.AbortWithStatusJSON(resp.CodeBadRequest, resp.Error(resp.CodeBadRequest, "Invalid request body"))
}

// WriteError 业务错误按 Kind 映射状态码；未知错误不把内部信息暴露给客户端
func WriteError(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, context.DeadlineExceeded) {
		c.AbortWithStatusJSON(resp.CodeTimeout, resp.Error(resp.CodeTimeout, ""))
		return
	}
	kind := domain.KindOf(err)
	code := resp.StatusOf(kind)
	msg := ""
	if kind != domain.KindUnknown {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(code, resp.Error(code, msg))
}
