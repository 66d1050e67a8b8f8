package events

import (
	"time"

	"github.com/spec-kit/license-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLicenseAssigned      EventType = "license_assigned"
	EventLicenseExtended      EventType = "license_extended"
	EventLicenseRevoked       EventType = "license_revoked"
	EventAccountStatusChanged EventType = "account_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.SubjectType `json:"type"`
	AdminID *int64             `json:"admin_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LicenseAssignedPayload payload.
type LicenseAssignedPayload struct {
	GrantID   int64              `json:"grant_id"`
	Kind      domain.LicenseKind `json:"kind"`
	ExpiresAt int64              `json:"expires_at"`
	Stacked   bool               `json:"stacked"`
}

// LicenseExtendedPayload payload.
type LicenseExtendedPayload struct {
	ExtraMs      int64 `json:"extra_ms"`
	NewExpiresAt int64 `json:"new_expires_at"`
}

// LicenseRevokedPayload payload.
type LicenseRevokedPayload struct{}

// AccountStatusChangedPayload payload.
type AccountStatusChangedPayload struct {
	Active bool `json:"active"`
}
