package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/service"
	httpez "medical-records-api/internal/transport/http/ez"
)

type AdminService interface {
	ListUsers(ctx context.Context) []domain.User
	Reconcile(ctx context.Context) (service.ReconcileReport, error)
}

type AdminHandler struct{ svc AdminService }

func NewAdminHandler(svc AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

// MountAdmin 挂在 /admin/v1 下，分组已经过 AdminKey 校验
func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	ez := httpez.New(admin)

	// --- GET /admin/v1/users  用户列表（不含密码） ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.svc.ListUsers(c.Request.Context()), nil
		},
	})

	// --- POST /admin/v1/reconcile  补建未关联的患者记录 ---
	httpez.RegisterAction(ez, httpez.Action[struct{}, service.ReconcileReport]{
		Method: http.MethodPost,
		Path:   "/reconcile",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (service.ReconcileReport, error) {
			return h.svc.Reconcile(c.Request.Context())
		},
	})
}
