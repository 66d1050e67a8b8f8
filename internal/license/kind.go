package license

import (
	"errors"

	"github.com/spec-kit/license-service/internal/domain"
)

// Sentinel errors for issuer and ledger operations. Services translate these
// into caller-facing error codes; none of them ever stands in for a storage failure.
var (
	ErrUnknownKind      = errors.New("unknown license kind")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrNoActiveLicense  = errors.New("no active license")
	ErrInvalidExtension = errors.New("extension would shrink expiry")
)

const (
	hourMs = int64(60 * 60 * 1000)
	dayMs  = 24 * hourMs
)

// durations is the closed table of grant lengths, in milliseconds.
var durations = map[domain.LicenseKind]int64{
	domain.LicenseKind24Hours: dayMs,
	domain.LicenseKind1Month:  30 * dayMs,
	domain.LicenseKind3Months: 90 * dayMs,
	domain.LicenseKind6Months: 180 * dayMs,
}

// DurationMs returns the grant length for a kind. Unrecognized kinds fail with
// ErrUnknownKind rather than defaulting.
func DurationMs(kind domain.LicenseKind) (int64, error) {
	ms, ok := durations[kind]
	if !ok {
		return 0, ErrUnknownKind
	}
	return ms, nil
}

// KnownKinds lists every accepted kind, for validation messages.
func KnownKinds() []domain.LicenseKind {
	return []domain.LicenseKind{
		domain.LicenseKind24Hours,
		domain.LicenseKind1Month,
		domain.LicenseKind3Months,
		domain.LicenseKind6Months,
	}
}
