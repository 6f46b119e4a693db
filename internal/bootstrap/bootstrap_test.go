package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medical-records-api/internal/core/config"
	"medical-records-api/internal/domain"
	"medical-records-api/internal/store"
)

func fileConfig(dir string, seedOn bool) *config.Config {
	return &config.Config{
		Storage: config.Storage{Driver: "file", Dir: dir},
		Seed:    config.Seed{Enabled: seedOn, Patients: 4},
	}
}

func TestNew_FileBackendSeedsAndServes(t *testing.T) {
	dir := t.TempDir()
	a, err := New(context.Background(), fileConfig(dir, true), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	for _, n := range store.All {
		_, err := os.Stat(filepath.Join(dir, string(n)+".json"))
		assert.NoError(t, err, n)
	}
	assert.Len(t, a.Service.ListPatients(context.Background()), 4)
	assert.Len(t, a.Service.ListDoctors(context.Background()), 3)
}

func TestNew_SeedDisabledLeavesEmptyCollections(t *testing.T) {
	a, err := New(context.Background(), fileConfig(t.TempDir(), false), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Empty(t, a.Service.ListPatients(context.Background()))
	assert.Empty(t, a.Service.ListUsers(context.Background()))
}

func TestNew_RepairsUnlinkedPatientUsers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := store.NewFileBackend(dir)
	require.NoError(t, err)
	s := store.New(b, nil)
	require.True(t, store.Save(ctx, s, store.Users, []domain.User{
		{ID: "user1", Name: "Ann", Email: "ann@x.io", Password: "pw", Role: domain.RolePatient},
	}))

	a, err := New(ctx, fileConfig(dir, false), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	patients := a.Service.ListPatients(ctx)
	require.Len(t, patients, 1)
	assert.Equal(t, "user1", patients[0].UserID)
	assert.Equal(t, "ann@x.io", patients[0].Email)
}

func TestNew_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Storage: config.Storage{Driver: "redis", RedisPrefix: "t:"},
		Redis:   config.Redis{Addr: mr.Addr()},
		Seed:    config.Seed{Enabled: true, Patients: 2},
	}
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, mr.Exists("t:patients"))
	assert.Len(t, a.Service.ListPatients(context.Background()), 2)
}

func TestNew_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{
		Storage: config.Storage{Driver: "redis"},
		Redis:   config.Redis{Addr: "127.0.0.1:1"},
	}
	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNew_CorruptCollectionIsNotSeededOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patients.json")
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0o644))

	a, err := New(context.Background(), fileConfig(dir, true), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[{broken", string(data))
}
