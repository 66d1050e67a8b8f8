package license

import "github.com/spec-kit/license-service/internal/domain"

// StackedExpiry computes the expiry for a new grant of the given kind.
//
// Renewal before expiry is additive: when the existing active grant is still
// unexpired the new expiry stacks on top of it, so paid-for time is never lost.
// With no active grant, or one that already lapsed, the clock restarts from now.
func StackedExpiry(existing *domain.LicenseGrant, kind domain.LicenseKind, nowMs int64) (int64, error) {
	duration, err := DurationMs(kind)
	if err != nil {
		return 0, err
	}
	if existing != nil && existing.ExpiresAt > nowMs {
		return existing.ExpiresAt + duration, nil
	}
	return nowMs + duration, nil
}

// ExtendedExpiry computes the expiry after topping up the current active grant
// by extraMs. The base is clamped to now so that an expired-but-still-flagged
// grant gains real time instead of extending a stale past expiry.
func ExtendedExpiry(currentExpiresAt, extraMs, nowMs int64) (int64, error) {
	if extraMs <= 0 {
		return 0, ErrInvalidDuration
	}
	base := currentExpiresAt
	if nowMs > base {
		base = nowMs
	}
	return base + extraMs, nil
}
