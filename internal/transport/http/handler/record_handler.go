package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/service"
	httpez "medical-records-api/internal/transport/http/ez"
)

// RecordService 处理器依赖的业务接口
type RecordService interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, in service.LoginInput) (domain.User, error)
	ListPatients(ctx context.Context) []domain.Patient
	GetPatient(ctx context.Context, id string) (domain.Patient, error)
	ListReportsForPatient(ctx context.Context, id string) []domain.Report
	ListDoctors(ctx context.Context) []domain.Doctor
}

type RecordHandler struct{ svc RecordService }

func NewRecordHandler(svc RecordService) *RecordHandler { return &RecordHandler{svc: svc} }

func (h *RecordHandler) Priority() int { return 10 }

// MountAPI 挂在 /api 下
func (h *RecordHandler) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	httpez.RegisterAction(ez, httpez.Action[service.RegisterInput, domain.User]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RegisterInput) (domain.User, error) {
			return h.svc.Register(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.LoginInput, domain.User]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.LoginInput) (domain.User, error) {
			return h.svc.Login(c.Request.Context(), *in)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Patient]{
		Method: http.MethodGet,
		Path:   "/patients",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Patient, error) {
			return h.svc.ListPatients(c.Request.Context()), nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, domain.Patient]{
		Method: http.MethodGet,
		Path:   "/patients/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Patient, error) {
			return h.svc.GetPatient(c.Request.Context(), c.Param("id"))
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Report]{
		Method: http.MethodGet,
		Path:   "/patients/:id/reports",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Report, error) {
			return h.svc.ListReportsForPatient(c.Request.Context(), c.Param("id")), nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, []domain.Doctor]{
		Method: http.MethodGet,
		Path:   "/doctors",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Doctor, error) {
			return h.svc.ListDoctors(c.Request.Context()), nil
		},
	})
}
