package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/config"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/events"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// DirectoryService manages accounts and operators on behalf of admins.
type DirectoryService struct {
	accounts   repository.AccountRepository
	admins     repository.AdminRepository
	ledger     repository.LicenseRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	seeds      []config.AdminSeed
}

// DirectoryDependencies bundles collaborators for the directory service.
type DirectoryDependencies struct {
	AccountRepo repository.AccountRepository
	AdminRepo   repository.AdminRepository
	LicenseRepo repository.LicenseRepository
	Dispatcher  events.Dispatcher
}

// NewDirectoryService constructs the service.
func NewDirectoryService(cfg config.Config, deps DirectoryDependencies, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		accounts:   deps.AccountRepo,
		admins:     deps.AdminRepo,
		ledger:     deps.LicenseRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		seeds:      cfg.Auth.AdminSeeds,
	}
}

// AccountOverview pairs an account with its current active grant, if any.
type AccountOverview struct {
	Account domain.Account
	Grant   *domain.LicenseGrant
}

// ListAccounts returns accounts newest-first, each joined with its active grant.
func (s *DirectoryService) ListAccounts(ctx context.Context, limit, offset int) ([]AccountOverview, error) {
	accounts, err := s.accounts.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]AccountOverview, 0, len(accounts))
	for _, account := range accounts {
		grant, err := s.ledger.GetActiveGrant(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, AccountOverview{Account: account, Grant: grant})
	}
	return result, nil
}

// SetAccountActive flips the account activity flag.
func (s *DirectoryService) SetAccountActive(ctx context.Context, accountID string, active bool) error {
	if err := s.accounts.SetActive(ctx, accountID, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", map[string]any{"account_id": accountID})
		}
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccountStatusChanged,
			AccountID: accountID,
			Actor:     events.Actor{Type: domain.SubjectTypeAdmin},
			Timestamp: time.Now(),
			Payload:   events.AccountStatusChangedPayload{Active: active},
		})
	}
	return nil
}

// BootstrapAdmins reprovisions operator accounts from configuration. Existing
// admin rows are wiped and reseeded, so the configured set is the only one
// that can log in. Idempotent; a provisioning step outside the license core.
func (s *DirectoryService) BootstrapAdmins(ctx context.Context) error {
	if len(s.seeds) == 0 {
		s.logger.Warn("no admin seed accounts configured; admin login disabled")
		return nil
	}

	if err := s.admins.DeleteAll(ctx); err != nil {
		return err
	}
	for _, seed := range s.seeds {
		hash, err := auth.HashPassword(seed.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		admin := &domain.AdminUser{Username: seed.Username, PasswordHash: hash}
		if err := s.admins.Create(ctx, admin); err != nil {
			return err
		}
		s.logger.Info("provisioned admin account", zap.String("username", seed.Username))
	}
	return nil
}
