package seed

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newGen(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed+1)), func() time.Time { return fixedNow })
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	b, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return store.New(b, nil)
}

func inRange(t *testing.T, name string, v, lo, hi int) {
	t.Helper()
	assert.GreaterOrEqual(t, v, lo, name)
	assert.LessOrEqual(t, v, hi, name)
}

func vital(t *testing.T, v domain.Vital) int {
	t.Helper()
	n, ok := v.Int()
	require.True(t, ok)
	return n
}

func TestGenerator_Patients(t *testing.T) {
	g := newGen(1)
	bp := regexp.MustCompile(`^(\d+)/(\d+)$`)
	phone := regexp.MustCompile(`^555-\d{4}$`)

	ps := g.Patients(200)
	require.Len(t, ps, 200)
	for i, p := range ps {
		assert.Equal(t, "p"+strconv.Itoa(i+1), p.ID)
		inRange(t, "age", p.Age, 18, 67)
		inRange(t, "weight", vital(t, p.Weight), 50, 99)
		inRange(t, "height", vital(t, p.Height), 150, 199)
		inRange(t, "heartRate", vital(t, p.HeartRate), 60, 99)
		assert.Regexp(t, phone, p.Phone)
		assert.Empty(t, p.UserID)

		m := bp.FindStringSubmatch(p.BloodPressure)
		require.NotNil(t, m, p.BloodPressure)
		sys, _ := strconv.Atoi(m[1])
		dia, _ := strconv.Atoi(m[2])
		inRange(t, "systolic", sys, 110, 149)
		inRange(t, "diastolic", dia, 70, 89)

		parts := strings.Split(p.Name, " ")
		require.Len(t, parts, 2)
		assert.Contains(t, firstNames, parts[0])
		assert.Contains(t, lastNames, parts[1])
		assert.Equal(t, strings.ToLower(parts[0])+"."+strings.ToLower(parts[1])+"@example.com", p.Email)
	}
}

func TestGenerator_Doctors(t *testing.T) {
	ds := newGen(2).Doctors()
	require.Len(t, ds, 3)
	for i, d := range ds {
		assert.Equal(t, DoctorIDs[i], d.ID)
	}
	assert.Equal(t, "Cardiology", ds[1].Specialization)
}

func TestGenerator_Reports(t *testing.T) {
	g := newGen(3)
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = "p" + strconv.Itoa(i+1)
	}
	reps := g.Reports(ids)
	assert.GreaterOrEqual(t, len(reps), 10)
	assert.LessOrEqual(t, len(reps), 30)

	perPatient := map[string]int{}
	earliest := fixedNow.AddDate(0, 0, -(reportWindowDays - 1)).Format(time.DateOnly)
	today := fixedNow.Format(time.DateOnly)
	for i, r := range reps {
		assert.Equal(t, "r"+strconv.Itoa(i+1), r.ID)
		assert.Contains(t, DoctorIDs, r.DoctorID)
		assert.Contains(t, reportTypes, r.Type)
		assert.GreaterOrEqual(t, r.Date, earliest)
		assert.LessOrEqual(t, r.Date, today)
		assert.Equal(t, "Sample findings for "+r.Type+". All values are within normal range.", r.Findings)
		assert.Equal(t, "Normal "+r.Type+" results. No significant abnormalities detected.", r.Impression)
		perPatient[r.PatientID]++
	}
	for _, id := range ids {
		inRange(t, id, perPatient[id], 1, 3)
	}
}

func TestGenerator_ReportsEmptyInput(t *testing.T) {
	reps := newGen(4).Reports(nil)
	assert.NotNil(t, reps)
	assert.Empty(t, reps)
}

func TestRun_SeedsEmptyCollections(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	res, err := Run(ctx, s, newGen(5), Options{Patients: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Patients)
	assert.Equal(t, 3, res.Doctors)
	assert.GreaterOrEqual(t, res.Reports, 10)
	assert.LessOrEqual(t, res.Reports, 30)

	assert.Len(t, store.Load[domain.Patient](ctx, s, store.Patients), 10)
	assert.Len(t, store.Load[domain.Doctor](ctx, s, store.Doctors), 3)
	assert.Len(t, store.Load[domain.Report](ctx, s, store.Reports), res.Reports)
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := Run(ctx, s, newGen(6), Options{}, nil)
	require.NoError(t, err)
	patients := store.Load[domain.Patient](ctx, s, store.Patients)
	doctors := store.Load[domain.Doctor](ctx, s, store.Doctors)
	reports := store.Load[domain.Report](ctx, s, store.Reports)

	res, err := Run(ctx, s, newGen(7), Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Equal(t, patients, store.Load[domain.Patient](ctx, s, store.Patients))
	assert.Equal(t, doctors, store.Load[domain.Doctor](ctx, s, store.Doctors))
	assert.Equal(t, reports, store.Load[domain.Report](ctx, s, store.Reports))
}

func TestRun_ReportsUseExistingPatients(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	existing := []domain.Patient{{ID: "p1", Name: "Only One", Age: 30}}
	require.True(t, store.Save(ctx, s, store.Patients, existing))

	res, err := Run(ctx, s, newGen(8), Options{}, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Patients)
	assert.Equal(t, existing, store.Load[domain.Patient](ctx, s, store.Patients))
	for _, r := range store.Load[domain.Report](ctx, s, store.Reports) {
		assert.Equal(t, "p1", r.PatientID)
	}
}
