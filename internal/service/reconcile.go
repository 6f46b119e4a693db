package service

import (
	"context"

	"go.uber.org/zap"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/repo"
	"medical-records-api/internal/store"
	"medical-records-api/pkg/utils"
)

type ReconcileReport struct {
	LinkedPatients   []string `json:"linkedPatients"` // 本次补建患者记录的 userId
	FailedLinks      int      `json:"failedLinks"`    // 补建时写入失败的数量
	OrphanPatients   int      `json:"orphanPatients"` // patientId 指向不存在患者的报告数
	OrphanDoctors    int      `json:"orphanDoctors"`  // doctorId 指向不存在医生的报告数
	ReportsInspected int      `json:"reportsInspected"`
}

// Reconcile 补齐注册时第二次写失败留下的未关联患者用户，
// 并统计（不修复）引用了不存在患者/医生的报告。
func (s *RecordService) Reconcile(ctx context.Context) (ReconcileReport, error) {
	rep := ReconcileReport{LinkedPatients: []string{}}

	patients, err := s.linkMissingPatients(ctx, &rep)
	if err != nil {
		return rep, err
	}

	patientIDs := make(map[string]struct{}, len(patients))
	for _, p := range patients {
		patientIDs[p.ID] = struct{}{}
	}
	doctorIDs := map[string]struct{}{}
	for _, d := range s.doctors.All(ctx) {
		doctorIDs[d.ID] = struct{}{}
	}
	for _, r := range s.reports.All(ctx) {
		rep.ReportsInspected++
		if _, ok := patientIDs[r.PatientID]; !ok {
			rep.OrphanPatients++
		}
		if _, ok := doctorIDs[r.DoctorID]; !ok {
			rep.OrphanDoctors++
		}
	}
	if rep.OrphanPatients > 0 || rep.OrphanDoctors > 0 {
		s.log.Warn("reports with dangling references",
			zap.Int("unknown_patient", rep.OrphanPatients),
			zap.Int("unknown_doctor", rep.OrphanDoctors),
		)
	}
	return rep, nil
}

// linkMissingPatients 持有 users+patients 锁补建患者，返回补建后的患者集合
func (s *RecordService) linkMissingPatients(ctx context.Context, rep *ReconcileReport) ([]domain.Patient, error) {
	unlock, err := s.store.Lock(ctx, store.Users, store.Patients)
	if err != nil {
		return nil, domain.Storage("reconcile: lock failed", err)
	}
	defer unlock()

	users := s.users.All(ctx)
	patients := s.patients.All(ctx)
	linked := repo.LinkedUserIDs(patients)

	var added []domain.Patient
	for _, u := range users {
		if u.Role != domain.RolePatient {
			continue
		}
		if _, ok := linked[u.ID]; ok {
			continue
		}
		added = append(added, domain.Patient{
			ID:     utils.NextID("p", len(patients)+len(added)),
			Name:   u.Name,
			Email:  u.Email,
			Age:    s.age(),
			UserID: u.ID,
		})
	}
	if len(added) == 0 {
		return patients, nil
	}
	if !s.patients.SaveAll(ctx, append(patients, added...)) {
		rep.FailedLinks = len(added)
		s.log.Error("reconcile save patients failed", zap.Int("pending", len(added)))
		return patients, nil
	}
	for _, p := range added {
		rep.LinkedPatients = append(rep.LinkedPatients, p.UserID)
	}
	s.log.Info("reconcile linked patients", zap.Strings("user_ids", rep.LinkedPatients))
	return append(patients, added...), nil
}
