package license

import "github.com/spec-kit/license-service/internal/domain"

// Evaluate computes the validity verdict for an account at a given instant.
// It is a pure function of its inputs: acct is nil when the account lookup
// failed, grant is nil when the ledger holds no active grant. Checks run in a
// fixed order and the first failing one decides the reason, so repeated calls
// with identical inputs always return the same verdict.
//
// The expiry boundary is exclusive on the valid side: a grant whose ExpiresAt
// equals nowMs is already expired.
func Evaluate(acct *domain.Account, grant *domain.LicenseGrant, nowMs int64) domain.Verdict {
	if acct == nil {
		return domain.Verdict{Reason: domain.ReasonAccountNotFound}
	}
	if !acct.Active {
		return domain.Verdict{Reason: domain.ReasonAccountDeactivated}
	}
	if grant == nil {
		return domain.Verdict{Reason: domain.ReasonNoLicense}
	}
	// Defensive re-check: a revoke racing the ledger read may hand us a grant
	// whose flag has already been cleared.
	if !grant.Active {
		return domain.Verdict{Reason: domain.ReasonLicenseRevoked}
	}
	if grant.ExpiresAt <= nowMs {
		return domain.Verdict{Reason: domain.ReasonLicenseExpired, ExpiresAt: grant.ExpiresAt}
	}
	return domain.Verdict{Valid: true, Kind: grant.Kind, ExpiresAt: grant.ExpiresAt}
}
