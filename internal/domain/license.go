package domain

import "time"

// LicenseKind enumerates the fixed set of purchasable license durations.
type LicenseKind string

const (
	LicenseKind24Hours LicenseKind = "24h"
	LicenseKind1Month  LicenseKind = "1month"
	LicenseKind3Months LicenseKind = "3months"
	LicenseKind6Months LicenseKind = "6months"
)

// LicenseGrant is one entry in an account's license history. At most one grant
// per account carries Active=true; superseded grants are kept with the flag
// cleared, never deleted.
type LicenseGrant struct {
	ID        int64
	AccountID string
	Kind      LicenseKind
	ExpiresAt int64 // milliseconds since epoch
	Active    bool
	CreatedAt time.Time
}

// InvalidReason explains why a validation verdict came back negative.
type InvalidReason string

const (
	ReasonAccountNotFound    InvalidReason = "ACCOUNT_NOT_FOUND"
	ReasonAccountDeactivated InvalidReason = "ACCOUNT_DEACTIVATED"
	ReasonNoLicense          InvalidReason = "NO_LICENSE"
	ReasonLicenseRevoked     InvalidReason = "LICENSE_REVOKED"
	ReasonLicenseExpired     InvalidReason = "LICENSE_EXPIRED"
)

// Verdict is the outcome of evaluating an account's entitlement at an instant.
// Kind and ExpiresAt are only populated when Valid is true, except that an
// expired grant still reports its ExpiresAt so clients can show when access ended.
type Verdict struct {
	Valid     bool
	Reason    InvalidReason
	Kind      LicenseKind
	ExpiresAt int64
}
