package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

type Options struct {
	Patients int // 患者数量，<=0 时用 10
}

// Result 记录本次各集合新增了多少条，0 表示已有数据被跳过
type Result struct {
	Patients int
	Doctors  int
	Reports  int
}

// Run 只在集合为空时写入种子数据，重复执行不会产生重复记录
func Run(ctx context.Context, s *store.Store, g *Generator, opt Options, l *zap.Logger) (Result, error) {
	if l == nil {
		l = zap.NewNop()
	}
	if opt.Patients <= 0 {
		opt.Patients = 10
	}
	var res Result

	unlock, err := s.Lock(ctx, store.Patients, store.Doctors, store.Reports)
	if err != nil {
		return res, err
	}
	defer unlock()

	patients := store.Load[domain.Patient](ctx, s, store.Patients)
	if len(patients) == 0 {
		patients = g.Patients(opt.Patients)
		if !store.Save(ctx, s, store.Patients, patients) {
			return res, fmt.Errorf("seed %s: save failed", store.Patients)
		}
		res.Patients = len(patients)
		l.Info("seeded collection", zap.String("collection", string(store.Patients)), zap.Int("count", res.Patients))
	}

	if doctors := store.Load[domain.Doctor](ctx, s, store.Doctors); len(doctors) == 0 {
		doctors = g.Doctors()
		if !store.Save(ctx, s, store.Doctors, doctors) {
			return res, fmt.Errorf("seed %s: save failed", store.Doctors)
		}
		res.Doctors = len(doctors)
		l.Info("seeded collection", zap.String("collection", string(store.Doctors)), zap.Int("count", res.Doctors))
	}

	if reports := store.Load[domain.Report](ctx, s, store.Reports); len(reports) == 0 {
		ids := make([]string, 0, len(patients))
		for _, p := range patients {
			ids = append(ids, p.ID)
		}
		reports = g.Reports(ids)
		if !store.Save(ctx, s, store.Reports, reports) {
			return res, fmt.Errorf("seed %s: save failed", store.Reports)
		}
		res.Reports = len(reports)
		l.Info("seeded collection", zap.String("collection", string(store.Reports)), zap.Int("count", res.Reports))
	}
	return res, nil
}
