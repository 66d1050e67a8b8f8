package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/events"
	"github.com/spec-kit/license-service/internal/license"
	"github.com/spec-kit/license-service/internal/repository"
	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// LicenseService coordinates license issuing, revocation and validation.
//
// Every operation that writes an account's grants runs under that account's
// lock, so a racing assign and add-time cannot both act on the same stale read
// of the current grant. Validation is read-only and takes no lock.
type LicenseService struct {
	accounts   repository.AccountRepository
	ledger     repository.LicenseRepository
	dispatcher events.Dispatcher
	clock      license.Clock
	offline    license.OfflinePolicy
	locks      *accountLocks
}

// LicenseDependencies bundles collaborators for the license service.
type LicenseDependencies struct {
	AccountRepo repository.AccountRepository
	LicenseRepo repository.LicenseRepository
	Dispatcher  events.Dispatcher
	Clock       license.Clock
	Offline     license.OfflinePolicy
}

// NewLicenseService constructs the service.
func NewLicenseService(deps LicenseDependencies) *LicenseService {
	clock := deps.Clock
	if clock == nil {
		clock = license.SystemClock
	}
	return &LicenseService{
		accounts:   deps.AccountRepo,
		ledger:     deps.LicenseRepo,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		offline:    deps.Offline,
		locks:      newAccountLocks(),
	}
}

// Validate evaluates an account's entitlement right now. Negative outcomes
// (missing account, no grant, expired) are verdicts, not errors; only storage
// failures come back as errors, so an outage is never reported as a
// license-state reason.
func (s *LicenseService) Validate(ctx context.Context, accountID string) (domain.Verdict, int64, error) {
	nowMs := s.clock.NowMs()

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			account = nil
		} else {
			return domain.Verdict{}, 0, apperrors.NewInternalError(err)
		}
	}

	var grant *domain.LicenseGrant
	if account != nil && account.Active {
		grant, err = s.ledger.GetActiveGrant(ctx, accountID)
		if err != nil {
			return domain.Verdict{}, 0, apperrors.NewInternalError(err)
		}
	}

	return license.Evaluate(account, grant, nowMs), nowMs, nil
}

// Assign grants a license of the given kind. Renewal before expiry stacks the
// new duration on the remaining time; otherwise the clock restarts from now.
// The existing grant is re-read under the account lock so concurrent assigns
// serialize and stack deterministically.
func (s *LicenseService) Assign(ctx context.Context, accountID string, kind domain.LicenseKind) (int64, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFound("account", map[string]any{"account_id": accountID})
		}
		return 0, err
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	nowMs := s.clock.NowMs()
	existing, err := s.ledger.GetActiveGrant(ctx, accountID)
	if err != nil {
		return 0, err
	}

	expiresAt, err := license.StackedExpiry(existing, kind, nowMs)
	if err != nil {
		return 0, err
	}

	grant, err := s.ledger.ReplaceActiveGrant(ctx, accountID, kind, expiresAt)
	if err != nil {
		return 0, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLicenseAssigned,
		AccountID: accountID,
		Payload: events.LicenseAssignedPayload{
			GrantID:   grant.ID,
			Kind:      kind,
			ExpiresAt: expiresAt,
			Stacked:   existing != nil && existing.ExpiresAt > nowMs,
		},
	})
	return expiresAt, nil
}

// Revoke deactivates every grant of the account. Idempotent; succeeds even
// when no grant ever existed.
func (s *LicenseService) Revoke(ctx context.Context, accountID string) error {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	if err := s.ledger.DeactivateAll(ctx, accountID); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLicenseRevoked,
		AccountID: accountID,
		Payload:   events.LicenseRevokedPayload{},
	})
	return nil
}

// AddTime tops up the current active grant by extraMs. The base is clamped to
// now, so an expired-but-still-active grant gains real time. Fails when no
// active grant exists or extraMs is not positive.
func (s *LicenseService) AddTime(ctx context.Context, accountID string, extraMs int64) (int64, error) {
	unlock := s.locks.Lock(accountID)
	defer unlock()

	nowMs := s.clock.NowMs()
	grant, err := s.ledger.GetActiveGrant(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if grant == nil {
		return 0, license.ErrNoActiveLicense
	}

	newExpiresAt, err := license.ExtendedExpiry(grant.ExpiresAt, extraMs, nowMs)
	if err != nil {
		return 0, err
	}
	if err := s.ledger.ExtendActiveExpiry(ctx, accountID, newExpiresAt); err != nil {
		return 0, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLicenseExtended,
		AccountID: accountID,
		Payload: events.LicenseExtendedPayload{
			ExtraMs:      extraMs,
			NewExpiresAt: newExpiresAt,
		},
	})
	return newExpiresAt, nil
}

// OfflinePolicy exposes the configured offline grace window.
func (s *LicenseService) OfflinePolicy() license.OfflinePolicy {
	return s.offline
}

func (s *LicenseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Actor.Type == "" {
		event.Actor.Type = domain.SubjectTypeAdmin
	}
	_ = s.dispatcher.Publish(ctx, event)
}
