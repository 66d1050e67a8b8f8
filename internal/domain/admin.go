package domain

import "time"

// AdminUser is an operator account allowed to manage licenses and releases.
type AdminUser struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
