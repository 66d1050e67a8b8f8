package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/license"
)

// LicenseRepository is the durable ledger of license grants. Grant history is
// append-only: revocation and supersession only clear the active flag, rows
// are never deleted.
type LicenseRepository interface {
	// GetActiveGrant returns the account's current active grant, or nil when
	// none exists. If the single-active invariant is ever violated it picks
	// the latest-expiring active grant.
	GetActiveGrant(ctx context.Context, accountID string) (*domain.LicenseGrant, error)
	// DeactivateAll clears the active flag on every grant of the account. Idempotent.
	DeactivateAll(ctx context.Context, accountID string) error
	// ReplaceActiveGrant deactivates all prior grants and inserts the new
	// active one in a single transaction, so at most one grant is ever active.
	ReplaceActiveGrant(ctx context.Context, accountID string, kind domain.LicenseKind, expiresAt int64) (*domain.LicenseGrant, error)
	// ExtendActiveExpiry moves the active grant's expiry to newExpiresAt.
	// Fails with license.ErrNoActiveLicense when no active grant exists and
	// with license.ErrInvalidExtension when the new expiry would be earlier
	// than the stored one.
	ExtendActiveExpiry(ctx context.Context, accountID string, newExpiresAt int64) error
}

type licenseRepository struct {
	pool *pgxpool.Pool
}

// NewLicenseRepository returns a Postgres-backed ledger.
func NewLicenseRepository(pool *pgxpool.Pool) LicenseRepository {
	return &licenseRepository{pool: pool}
}

func (r *licenseRepository) GetActiveGrant(ctx context.Context, accountID string) (*domain.LicenseGrant, error) {
	const query = `
        SELECT id, account_id, kind, expires_at, active, created_at
        FROM license_grants
        WHERE account_id=$1 AND active
        ORDER BY expires_at DESC
        LIMIT 1`

	var grant domain.LicenseGrant
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&grant.ID,
		&grant.AccountID,
		&grant.Kind,
		&grant.ExpiresAt,
		&grant.Active,
		&grant.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *licenseRepository) DeactivateAll(ctx context.Context, accountID string) error {
	const query = `UPDATE license_grants SET active=FALSE WHERE account_id=$1`
	_, err := r.pool.Exec(ctx, query, accountID)
	return err
}

func (r *licenseRepository) ReplaceActiveGrant(ctx context.Context, accountID string, kind domain.LicenseKind, expiresAt int64) (*domain.LicenseGrant, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE license_grants SET active=FALSE WHERE account_id=$1`, accountID); err != nil {
		return nil, err
	}

	const insert = `
        INSERT INTO license_grants (account_id, kind, expires_at, active)
        VALUES ($1,$2,$3,TRUE)
        RETURNING id, created_at`

	grant := &domain.LicenseGrant{
		AccountID: accountID,
		Kind:      kind,
		ExpiresAt: expiresAt,
		Active:    true,
	}
	if err := tx.QueryRow(ctx, insert, accountID, kind, expiresAt).Scan(&grant.ID, &grant.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return grant, nil
}

func (r *licenseRepository) ExtendActiveExpiry(ctx context.Context, accountID string, newExpiresAt int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var current int64
	err = tx.QueryRow(ctx, `
        SELECT expires_at FROM license_grants
        WHERE account_id=$1 AND active
        ORDER BY expires_at DESC
        LIMIT 1
        FOR UPDATE`, accountID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return license.ErrNoActiveLicense
		}
		return err
	}
	if newExpiresAt < current {
		return license.ErrInvalidExtension
	}

	cmd, err := tx.Exec(ctx, `UPDATE license_grants SET expires_at=$1 WHERE account_id=$2 AND active`, newExpiresAt, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return license.ErrNoActiveLicense
	}
	return tx.Commit(ctx)
}
