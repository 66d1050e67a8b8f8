package dto

import "time"

// AdminLoginRequest payload for operator login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetAccountActiveRequest payload for activating/deactivating an account.
// Pointer so a missing field is distinguishable from an explicit false.
type SetAccountActiveRequest struct {
	IsActive *bool `json:"isActive"`
}

// AccountLicenseSummary describes an account's current grant in admin listings.
type AccountLicenseSummary struct {
	Kind      string `json:"kind"`
	ExpiresAt int64  `json:"expiresAt"`
	Active    bool   `json:"active"`
}

// AccountSummary is one row of the admin account listing.
type AccountSummary struct {
	ID           string                 `json:"id"`
	Username     string                 `json:"username"`
	FirstName    string                 `json:"firstName"`
	LastName     string                 `json:"lastName"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	RegisteredIP string                 `json:"registeredIp"`
	IsActive     bool                   `json:"isActive"`
	CreatedAt    time.Time              `json:"createdAt"`
	License      *AccountLicenseSummary `json:"license"`
}
