package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medical-records-api/internal/domain"
)

var samplePatients = []domain.Patient{
	{ID: "p1", Name: "John Smith", Age: 40, Email: "john.smith@example.com", Phone: "555-1234",
		Weight: domain.IntVital(80), Height: domain.IntVital(180), HeartRate: domain.IntVital(72), BloodPressure: "120/80"},
	{ID: "p2", Name: "Jane Doe", Age: 33, Email: "jane@x.com", UserID: "user1"},
}

func newFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "db")
	b, err := NewFileBackend(dir)
	require.NoError(t, err)
	return New(b, nil), dir
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	fb, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rb := NewRedisBackend(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "medrec:")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	gb, err := NewGormBackend(db)
	require.NoError(t, err)

	return map[string]Backend{"file": fb, "redis": rb, "sql": gb}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(b, nil)
			require.True(t, Save(ctx, s, Patients, samplePatients))
			got := Load[domain.Patient](ctx, s, Patients)
			assert.Equal(t, samplePatients, got)

			// 第二次覆盖写
			require.True(t, Save(ctx, s, Patients, samplePatients[:1]))
			assert.Equal(t, samplePatients[:1], Load[domain.Patient](ctx, s, Patients))
		})
	}
}

func TestLoad_MissingCollectionIsCreatedEmpty(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(b, nil)
			got := Load[domain.User](ctx, s, Users)
			assert.NotNil(t, got)
			assert.Empty(t, got)

			data, err := b.Read(ctx, Users)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(data))
		})
	}
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	require.True(t, Save[domain.Doctor](ctx, s, Doctors, nil))

	data, err := os.ReadFile(filepath.Join(dir, "doctors.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSave_PrettyPrinted(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	docs := []domain.Doctor{{ID: "d1", Name: "Dr. Meera Joshi", Specialization: "General Medicine", Email: "meera.joshi@example.com"}}
	require.True(t, Save(ctx, s, Doctors, docs))

	data, err := os.ReadFile(filepath.Join(dir, "doctors.json"))
	require.NoError(t, err)
	want := `[
  {
    "id": "d1",
    "name": "Dr. Meera Joshi",
    "specialization": "General Medicine",
    "email": "meera.joshi@example.com"
  }
]`
	assert.Equal(t, want, string(data))
}

func TestLoad_CorruptFileFailsSoft(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reports.json"), []byte("{not json"), 0o644))

	got := Load[domain.Report](ctx, s, Reports)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// 损坏的文件不能被覆盖
	data, err := os.ReadFile(filepath.Join(dir, "reports.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestLoad_NullContentIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("null"), 0o644))
	got := Load[domain.User](ctx, s, Users)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

type failingBackend struct {
	readErr  error
	writeErr error
	writes   int
}

func (f *failingBackend) Read(context.Context, Name) ([]byte, error) { return nil, f.readErr }
func (f *failingBackend) Write(context.Context, Name, []byte) error {
	f.writes++
	return f.writeErr
}

func TestSave_FailureReturnsFalse(t *testing.T) {
	s := New(&failingBackend{writeErr: errors.New("disk full")}, nil)
	assert.False(t, Save(context.Background(), s, Users, []domain.User{{ID: "user1"}}))
}

func TestLoad_ReadFailureReturnsEmpty(t *testing.T) {
	fb := &failingBackend{readErr: errors.New("permission denied")}
	s := New(fb, nil)
	got := Load[domain.User](context.Background(), s, Users)
	assert.Empty(t, got)
	assert.Zero(t, fb.writes)
}

func TestInit_CreatesOnlyMissing(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	require.True(t, Save(ctx, s, Doctors, []domain.Doctor{{ID: "d1"}}))

	require.NoError(t, s.Init(ctx, All...))
	for _, n := range All {
		_, err := os.Stat(filepath.Join(dir, string(n)+".json"))
		assert.NoError(t, err, n)
	}
	assert.Len(t, Load[domain.Doctor](ctx, s, Doctors), 1)
}

func TestInit_WriteFailure(t *testing.T) {
	s := New(&failingBackend{readErr: ErrNotExist, writeErr: errors.New("ro fs")}, nil)
	assert.Error(t, s.Init(context.Background(), Users))
}

func TestLock_SerializesReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newFileStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := s.Lock(ctx, Reports)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()
			rs := Load[domain.Report](ctx, s, Reports)
			rs = append(rs, domain.Report{ID: "r"})
			assert.True(t, Save(ctx, s, Reports, rs))
		}()
	}
	wg.Wait()
	assert.Len(t, Load[domain.Report](ctx, s, Reports), n)
}

func TestLock_HonoursContext(t *testing.T) {
	s, _ := newFileStore(t)
	unlock, err := s.Lock(context.Background(), Users, Patients)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.Lock(ctx, Patients)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLock_DuplicateNamesDoNotDeadlock(t *testing.T) {
	s, _ := newFileStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err := s.Lock(ctx, Users, Users, Patients)
	require.NoError(t, err)
	unlock()

	// 释放后可以再次获取
	unlock, err = s.Lock(ctx, Patients, Users)
	require.NoError(t, err)
	unlock()
}

func TestLoad_StringVitalsAndLooseTimestamps(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	patients := `[{"id":"p1","name":"Ann","age":30,"email":"a@x.io","weight":"70","height":165,"heartRate":"72"},` +
		`{"id":"p2","name":"Bob","age":41,"email":"b@x.io"}]`
	users := `[{"id":"user1","name":"U","email":"u@e.com","password":"pw","role":"patient","createdAt":""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patients.json"), []byte(patients), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(users), 0o644))

	ps := Load[domain.Patient](ctx, s, Patients)
	require.Len(t, ps, 2)
	w, ok := ps[0].Weight.Int()
	assert.True(t, ok)
	assert.Equal(t, 70, w)
	us := Load[domain.User](ctx, s, Users)
	require.Len(t, us, 1)
	assert.Empty(t, us[0].CreatedAt)

	require.True(t, Save(ctx, s, Patients, ps))
	data, err := os.ReadFile(filepath.Join(dir, "patients.json"))
	require.NoError(t, err)
	assert.JSONEq(t, patients, string(data))
}

func TestSave_RefusesUnreadableCollection(t *testing.T) {
	ctx := context.Background()
	s, dir := newFileStore(t)
	path := filepath.Join(dir, "patients.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Empty(t, Load[domain.Patient](ctx, s, Patients))
	assert.False(t, Save(ctx, s, Patients, []domain.Patient{{ID: "p1"}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))

	// 其它集合不受影响
	assert.True(t, Save(ctx, s, Doctors, []domain.Doctor{{ID: "d1"}}))

	// 修好以后重新读成功，写入恢复
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	assert.Empty(t, Load[domain.Patient](ctx, s, Patients))
	assert.True(t, Save(ctx, s, Patients, []domain.Patient{{ID: "p1"}}))
}
