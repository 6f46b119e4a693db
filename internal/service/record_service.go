package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/repo"
	"medical-records-api/internal/seed"
	"medical-records-api/internal/store"
	"medical-records-api/pkg/utils"
)

const (
	msgAllFieldsRequired   = "All fields are required"
	msgUserExists          = "User already exists with this email"
	msgRegisterFailed      = "Failed to register user"
	msgCredentialsRequired = "Email and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgPatientNotFound     = "Patient not found"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Deps 显式传入所有依赖，服务本身不缓存任何集合
type Deps struct {
	Store *store.Store
	Age   func() int       // 注册患者的随机年龄，只在持有 patients 锁时调用
	Now   func() time.Time // createdAt
	Log   *zap.Logger
}

type RecordService struct {
	store    *store.Store
	users    *repo.UserRepo
	patients *repo.PatientRepo
	doctors  *repo.DoctorRepo
	reports  *repo.ReportRepo
	age      func() int
	now      func() time.Time
	log      *zap.Logger
}

func NewRecordService(d Deps) *RecordService {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Age == nil {
		d.Age = seed.NewGenerator(nil, nil).Age
	}
	return &RecordService{
		store:    d.Store,
		users:    repo.NewUserRepo(d.Store),
		patients: repo.NewPatientRepo(d.Store),
		doctors:  repo.NewDoctorRepo(d.Store),
		reports:  repo.NewReportRepo(d.Store),
		age:      d.Age,
		now:      d.Now,
		log:      d.Log,
	}
}

// Register 创建用户；role=patient 时再写一次 patients 集合建立关联。
// 第二次写失败不影响返回结果，遗留的用户由 Reconcile 补齐。
func (s *RecordService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return domain.User{}, domain.Validation(msgAllFieldsRequired)
	}

	names := []store.Name{store.Users}
	if in.Role == domain.RolePatient {
		names = append(names, store.Patients)
	}
	unlock, err := s.store.Lock(ctx, names...)
	if err != nil {
		return domain.User{}, domain.Storage(msgRegisterFailed, err)
	}
	defer unlock()

	users := s.users.All(ctx)
	if _, exists := repo.FindUserByEmail(users, in.Email); exists {
		return domain.User{}, domain.Conflict(msgUserExists)
	}

	u := domain.User{
		ID:        utils.NextID("user", len(users)),
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
		CreatedAt: domain.FormatTime(s.now()),
	}
	if !s.users.SaveAll(ctx, append(users, u)) {
		return domain.User{}, domain.Storage(msgRegisterFailed, nil)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", u.Role))

	if u.Role == domain.RolePatient {
		if p, ok := s.linkPatient(ctx, u); ok {
			s.log.Info("patient linked", zap.String("user_id", u.ID), zap.String("patient_id", p.ID))
		} else {
			s.log.Warn("patient link failed, user left unlinked", zap.String("user_id", u.ID))
		}
	}
	return u.WithoutCredential(), nil
}

// linkPatient 调用方必须持有 patients 锁
func (s *RecordService) linkPatient(ctx context.Context, u domain.User) (domain.Patient, bool) {
	patients := s.patients.All(ctx)
	p := domain.Patient{
		ID:     utils.NextID("p", len(patients)),
		Name:   u.Name,
		Email:  u.Email,
		Age:    s.age(),
		UserID: u.ID,
	}
	return p, s.patients.SaveAll(ctx, append(patients, p))
}

// Login 不区分"邮箱不存在"和"密码错误"
func (s *RecordService) Login(ctx context.Context, in LoginInput) (domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return domain.User{}, domain.Validation(msgCredentialsRequired)
	}
	u, ok := s.users.FindByCredentials(ctx, in.Email, in.Password)
	if !ok {
		return domain.User{}, domain.Auth(msgInvalidCredentials)
	}
	return u.WithoutCredential(), nil
}

func (s *RecordService) ListPatients(ctx context.Context) []domain.Patient {
	return s.patients.All(ctx)
}

func (s *RecordService) GetPatient(ctx context.Context, id string) (domain.Patient, error) {
	p, ok := s.patients.FindByID(ctx, id)
	if !ok {
		return domain.Patient{}, domain.NotFound(msgPatientNotFound)
	}
	return *p, nil
}

func (s *RecordService) ListReportsForPatient(ctx context.Context, id string) []domain.Report {
	return s.reports.ListByPatient(ctx, id)
}

func (s *RecordService) ListDoctors(ctx context.Context) []domain.Doctor {
	return s.doctors.All(ctx)
}

// ListUsers 运维接口使用，密码已去掉
func (s *RecordService) ListUsers(ctx context.Context) []domain.User {
	users := s.users.All(ctx)
	for i := range users {
		users[i] = users[i].WithoutCredential()
	}
	return users
}
