package repo

import (
	"context"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

type PatientRepo struct{ Collection[domain.Patient] }

func NewPatientRepo(s *store.Store) *PatientRepo {
	return &PatientRepo{Collection[domain.Patient]{s: s, name: store.Patients}}
}

func (r *PatientRepo) FindByID(ctx context.Context, id string) (*domain.Patient, bool) {
	return find(r.All(ctx), func(p *domain.Patient) bool { return p.ID == id })
}

// LinkedUserIDs 已经关联了患者记录的 userId 集合
func LinkedUserIDs(patients []domain.Patient) map[string]struct{} {
	out := make(map[string]struct{}, len(patients))
	for _, p := range patients {
		if p.UserID != "" {
			out[p.UserID] = struct{}{}
		}
	}
	return out
}
