package license

import "time"

// DefaultMaxOffline is how long a client may keep trusting a previously
// fetched valid verdict without re-validating against the server.
const DefaultMaxOffline = 72 * time.Hour

// OfflinePolicy publishes the offline grace window. It is a policy value the
// client enforces, not a server-side mechanism: the server runs no timers and
// performs no background cutoff. Set once at process start, immutable after.
type OfflinePolicy struct {
	maxOffline time.Duration
}

// NewOfflinePolicy builds the policy, falling back to the default for
// non-positive values.
func NewOfflinePolicy(maxOffline time.Duration) OfflinePolicy {
	if maxOffline <= 0 {
		maxOffline = DefaultMaxOffline
	}
	return OfflinePolicy{maxOffline: maxOffline}
}

// MaxOfflineMs returns the grace window in milliseconds.
func (p OfflinePolicy) MaxOfflineMs() int64 {
	return p.maxOffline.Milliseconds()
}

// MaxOfflineHours returns the grace window in whole hours.
func (p OfflinePolicy) MaxOfflineHours() float64 {
	return p.maxOffline.Hours()
}
