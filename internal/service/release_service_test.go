package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/domain"
)

type fakeReleaseRepo struct {
	mu      sync.Mutex
	current *domain.ReleaseInfo
}

func (r *fakeReleaseRepo) GetCurrent(_ context.Context) (*domain.ReleaseInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil, nil
	}
	copied := *r.current
	return &copied, nil
}

func (r *fakeReleaseRepo) Upsert(_ context.Context, info *domain.ReleaseInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *info
	r.current = &copied
	return nil
}

type fakeAppConfigRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeAppConfigRepo() *fakeAppConfigRepo {
	return &fakeAppConfigRepo{values: map[string]string{}}
}

func (r *fakeAppConfigRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[key]
	return value, ok, nil
}

func (r *fakeAppConfigRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *fakeAppConfigRepo) EnsureDefault(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.values[key]; !ok {
		r.values[key] = value
	}
	return nil
}

func (r *fakeAppConfigRepo) ListAll(_ context.Context) ([]domain.ConfigEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]domain.ConfigEntry, 0, len(r.values))
	for key, value := range r.values {
		entries = append(entries, domain.ConfigEntry{Key: key, Value: value})
	}
	return entries, nil
}

func TestReleaseCurrentDefaultsWhenUnset(t *testing.T) {
	svc := NewReleaseService(&fakeReleaseRepo{}, newFakeAppConfigRepo())

	info, err := svc.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", info.CurrentVersion)
	assert.Equal(t, "1.0.0", info.MinVersion)
	assert.False(t, info.ForceUpdate)
}

func TestReleaseUpdateAndReadBack(t *testing.T) {
	svc := NewReleaseService(&fakeReleaseRepo{}, newFakeAppConfigRepo())

	updated, err := svc.Update(context.Background(), ReleaseUpdateInput{
		CurrentVersion: "2.1.0",
		MinVersion:     "2.0.0",
		ForceUpdate:    true,
		DownloadURL:    "https://example.com/app",
	})
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", updated.CurrentVersion)

	info, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", info.CurrentVersion)
	assert.Equal(t, "2.0.0", info.MinVersion)
	assert.True(t, info.ForceUpdate)
}

func TestReleaseUpdateFillsEmptyVersions(t *testing.T) {
	svc := NewReleaseService(&fakeReleaseRepo{}, newFakeAppConfigRepo())

	updated, err := svc.Update(context.Background(), ReleaseUpdateInput{ForceUpdate: true})

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", updated.CurrentVersion)
	assert.Equal(t, "1.0.0", updated.MinVersion)
}

func TestReleaseEnsureDefaultsIsIdempotent(t *testing.T) {
	releases := &fakeReleaseRepo{}
	svc := NewReleaseService(releases, newFakeAppConfigRepo())

	require.NoError(t, svc.EnsureDefaults(context.Background()))

	_, err := svc.Update(context.Background(), ReleaseUpdateInput{CurrentVersion: "3.0.0"})
	require.NoError(t, err)

	require.NoError(t, svc.EnsureDefaults(context.Background()))

	info, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", info.CurrentVersion)
}

func TestConfigSnapshotParsesJSONValues(t *testing.T) {
	appcfg := newFakeAppConfigRepo()
	require.NoError(t, appcfg.Set(context.Background(), "base_user_count", "319"))
	require.NoError(t, appcfg.Set(context.Background(), "features", `{"dark_mode":true}`))
	require.NoError(t, appcfg.Set(context.Background(), "motd", "hello there"))
	svc := NewReleaseService(&fakeReleaseRepo{}, appcfg)

	snapshot, err := svc.ConfigSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, float64(319), snapshot["base_user_count"])
	assert.Equal(t, map[string]any{"dark_mode": true}, snapshot["features"])
	assert.Equal(t, "hello there", snapshot["motd"])
}

func TestUserCountCombinesBaseAndReal(t *testing.T) {
	accounts := newFakeAccountRepo(
		&domain.Account{ID: "a1", Username: "u1", Active: true},
		&domain.Account{ID: "a2", Username: "u2", Active: true},
	)
	appcfg := newFakeAppConfigRepo()
	svc := NewStatsService(config.StatsConfig{BaseUserCount: 319}, accounts, appcfg, nil, zap.NewNop())

	result, err := svc.UserCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(319), result.Base)
	assert.Equal(t, int64(2), result.Real)
	assert.Equal(t, int64(321), result.Total)
}

func TestUserCountPrefersStoredBase(t *testing.T) {
	accounts := newFakeAccountRepo(&domain.Account{ID: "a1", Username: "u1", Active: true})
	appcfg := newFakeAppConfigRepo()
	require.NoError(t, appcfg.Set(context.Background(), "base_user_count", "1000"))
	svc := NewStatsService(config.StatsConfig{BaseUserCount: 319}, accounts, appcfg, nil, zap.NewNop())

	result, err := svc.UserCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1001), result.Total)
}

func TestEnsureBaseCountSeedsOnce(t *testing.T) {
	appcfg := newFakeAppConfigRepo()
	svc := NewStatsService(config.StatsConfig{BaseUserCount: 319}, newFakeAccountRepo(), appcfg, nil, zap.NewNop())

	require.NoError(t, svc.EnsureBaseCount(context.Background()))
	require.NoError(t, appcfg.Set(context.Background(), "base_user_count", "500"))
	require.NoError(t, svc.EnsureBaseCount(context.Background()))

	value, ok, err := appcfg.Get(context.Background(), "base_user_count")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "500", value)
}
