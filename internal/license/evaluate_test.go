package license

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/license-service/internal/domain"
)

func activeAccount() *domain.Account {
	return &domain.Account{ID: "acct-1", Username: "user", Active: true}
}

func TestEvaluateVerdictOrder(t *testing.T) {
	now := int64(1_700_000_000_000)

	deactivated := activeAccount()
	deactivated.Active = false

	tests := []struct {
		name    string
		acct    *domain.Account
		grant   *domain.LicenseGrant
		valid   bool
		reason  domain.InvalidReason
	}{
		{
			name:   "missing account",
			acct:   nil,
			grant:  &domain.LicenseGrant{Active: true, ExpiresAt: now + 1000},
			reason: domain.ReasonAccountNotFound,
		},
		{
			name:   "deactivated account outranks valid grant",
			acct:   deactivated,
			grant:  &domain.LicenseGrant{Active: true, ExpiresAt: now + 1000},
			reason: domain.ReasonAccountDeactivated,
		},
		{
			name:   "no grant on record",
			acct:   activeAccount(),
			grant:  nil,
			reason: domain.ReasonNoLicense,
		},
		{
			name:   "revoked grant checked before expiry",
			acct:   activeAccount(),
			grant:  &domain.LicenseGrant{Active: false, ExpiresAt: now - 1000},
			reason: domain.ReasonLicenseRevoked,
		},
		{
			name:   "expired grant",
			acct:   activeAccount(),
			grant:  &domain.LicenseGrant{Active: true, ExpiresAt: now - 1},
			reason: domain.ReasonLicenseExpired,
		},
		{
			name:  "live grant",
			acct:  activeAccount(),
			grant: &domain.LicenseGrant{Active: true, Kind: domain.LicenseKind1Month, ExpiresAt: now + 1000},
			valid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Evaluate(tc.acct, tc.grant, now)
			assert.Equal(t, tc.valid, verdict.Valid)
			assert.Equal(t, tc.reason, verdict.Reason)
		})
	}
}

func TestEvaluateExpiryBoundaryIsExclusive(t *testing.T) {
	now := int64(1_700_000_000_000)
	grant := &domain.LicenseGrant{Active: true, Kind: domain.LicenseKind24Hours, ExpiresAt: now}

	verdict := Evaluate(activeAccount(), grant, now)

	assert.False(t, verdict.Valid)
	assert.Equal(t, domain.ReasonLicenseExpired, verdict.Reason)
	assert.Equal(t, now, verdict.ExpiresAt)

	verdict = Evaluate(activeAccount(), grant, now-1)
	assert.True(t, verdict.Valid)
}

func TestEvaluateCarriesGrantDetails(t *testing.T) {
	now := int64(1_700_000_000_000)
	grant := &domain.LicenseGrant{Active: true, Kind: domain.LicenseKind3Months, ExpiresAt: now + 5000}

	verdict := Evaluate(activeAccount(), grant, now)

	assert.True(t, verdict.Valid)
	assert.Equal(t, domain.LicenseKind3Months, verdict.Kind)
	assert.Equal(t, now+5000, verdict.ExpiresAt)
	assert.Empty(t, verdict.Reason)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	now := int64(1_700_000_000_000)
	grant := &domain.LicenseGrant{Active: true, Kind: domain.LicenseKind6Months, ExpiresAt: now + 100}

	first := Evaluate(activeAccount(), grant, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(activeAccount(), grant, now))
	}
}
