package repo

import (
	"context"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

type ReportRepo struct{ Collection[domain.Report] }

func NewReportRepo(s *store.Store) *ReportRepo {
	return &ReportRepo{Collection[domain.Report]{s: s, name: store.Reports}}
}

// ListByPatient 保持插入顺序；没有时返回空切片而不是 nil
func (r *ReportRepo) ListByPatient(ctx context.Context, patientID string) []domain.Report {
	out := []domain.Report{}
	for _, rep := range r.All(ctx) {
		if rep.PatientID == patientID {
			out = append(out, rep)
		}
	}
	return out
}
