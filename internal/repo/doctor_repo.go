package repo

import (
	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

type DoctorRepo struct{ Collection[domain.Doctor] }

func NewDoctorRepo(s *store.Store) *DoctorRepo {
	return &DoctorRepo{Collection[domain.Doctor]{s: s, name: store.Doctors}}
}
