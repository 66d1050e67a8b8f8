package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/domain"
)

type fakeAdminRepo struct {
	mu     sync.Mutex
	nextID int64
	admins map[string]*domain.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*domain.AdminUser{}}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	admin.ID = r.nextID
	admin.CreatedAt = time.Now()
	r.admins[admin.Username] = admin
	return nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins = map[string]*domain.AdminUser{}
	r.nextID = 0
	return nil
}

func testConfig(seeds ...config.AdminSeed) config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret",
			AccountTokenTTLHours: 1,
			AdminTokenTTLHours:   1,
			BcryptCost:           4,
			AdminSeeds:           seeds,
		},
	}
}

func TestRegisterAccountIssuesToken(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: repo, AdminRepo: newFakeAdminRepo()})

	account, token, exp, err := svc.RegisterAccount(context.Background(), RegisterInput{
		Username:  "alice",
		Password:  "hunter2",
		Email:     "alice@example.com",
		IPAddress: "203.0.113.7",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.True(t, account.Active)
	assert.NotEqual(t, "hunter2", account.PasswordHash)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeAccount, claims.Subject)
}

func TestRegisterAccountRejectsTakenUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: repo, AdminRepo: newFakeAdminRepo()})

	_, _, _, err := svc.RegisterAccount(context.Background(), RegisterInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, _, _, err = svc.RegisterAccount(context.Background(), RegisterInput{Username: "alice", Password: "other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taken")
}

func TestLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: repo, AdminRepo: newFakeAdminRepo()})

	registered, _, _, err := svc.RegisterAccount(context.Background(), RegisterInput{
		Username: "bob", Password: "secret", Email: "bob@example.com",
	})
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		account, token, _, err := svc.Login(context.Background(), "bob", "secret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("by email", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "bob@example.com", "secret")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "bob", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, _, err := svc.Login(context.Background(), "ghost", "secret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("deactivated account", func(t *testing.T) {
		require.NoError(t, repo.SetActive(context.Background(), registered.ID, false))
		_, _, _, err := svc.Login(context.Background(), "bob", "secret")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})
}

func TestBootstrapAdminsAndLogin(t *testing.T) {
	cfg := testConfig(config.AdminSeed{Username: "root", Password: "toor"})
	adminRepo := newFakeAdminRepo()
	authSvc := NewAuthService(cfg, AuthDependencies{AccountRepo: newFakeAccountRepo(), AdminRepo: adminRepo})
	dirSvc := NewDirectoryService(cfg, DirectoryDependencies{
		AccountRepo: newFakeAccountRepo(),
		AdminRepo:   adminRepo,
		LicenseRepo: &fakeLedger{},
	}, zap.NewNop())

	require.NoError(t, dirSvc.BootstrapAdmins(context.Background()))

	token, _, err := authSvc.AdminLogin(context.Background(), "root", "toor")
	require.NoError(t, err)

	claims, err := authSvc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeAdmin, claims.Subject)

	admin, err := adminRepo.GetByUsername(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(admin.ID, 10), claims.SubjectID)

	_, _, err = authSvc.AdminLogin(context.Background(), "root", "wrong")
	require.Error(t, err)
}

func TestBootstrapAdminsReprovisions(t *testing.T) {
	adminRepo := newFakeAdminRepo()
	cfg := testConfig(config.AdminSeed{Username: "ops", Password: "pw1"})
	dirSvc := NewDirectoryService(cfg, DirectoryDependencies{
		AccountRepo: newFakeAccountRepo(),
		AdminRepo:   adminRepo,
		LicenseRepo: &fakeLedger{},
	}, zap.NewNop())

	require.NoError(t, dirSvc.BootstrapAdmins(context.Background()))
	require.NoError(t, dirSvc.BootstrapAdmins(context.Background()))

	admin, err := adminRepo.GetByUsername(context.Background(), "ops")
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(admin.PasswordHash, "pw1"))
}

func TestBootstrapAdminsWithoutSeeds(t *testing.T) {
	dirSvc := NewDirectoryService(testConfig(), DirectoryDependencies{
		AccountRepo: newFakeAccountRepo(),
		AdminRepo:   newFakeAdminRepo(),
		LicenseRepo: &fakeLedger{},
	}, zap.NewNop())

	require.NoError(t, dirSvc.BootstrapAdmins(context.Background()))
}
