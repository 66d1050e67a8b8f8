package dto

// LicenseInfo is the valid-grant portion of a verdict.
type LicenseInfo struct {
	Kind      string `json:"kind"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ValidateResponse serializes an entitlement verdict. Reason and ExpiresAt are
// present only on negative verdicts, License only on positive ones.
type ValidateResponse struct {
	Valid       bool         `json:"valid"`
	Reason      string       `json:"reason,omitempty"`
	ExpiresAt   int64        `json:"expiresAt,omitempty"`
	License     *LicenseInfo `json:"license,omitempty"`
	ValidatedAt int64        `json:"validatedAt"`
}

// OfflinePolicyResponse publishes the offline grace window.
type OfflinePolicyResponse struct {
	MaxOfflineMs    int64   `json:"maxOfflineMs"`
	MaxOfflineHours float64 `json:"maxOfflineHours"`
}

// AssignLicenseRequest payload for granting a license.
type AssignLicenseRequest struct {
	Kind string `json:"kind"`
}

// AddTimeRequest payload for topping up a license. ExtraMs wins when set;
// days/hours are a convenience for operator tooling.
type AddTimeRequest struct {
	ExtraMs int64 `json:"extraMs"`
	Days    int   `json:"days"`
	Hours   int   `json:"hours"`
}

// ExpiryResponse returns the resulting expiry of a grant operation.
type ExpiryResponse struct {
	ExpiresAt int64 `json:"expiresAt"`
}
