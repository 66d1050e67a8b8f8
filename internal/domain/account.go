package domain

import "time"

// Account is the domain model for end-users whose access is governed by licenses.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DeviceID     string
	RegisteredIP string
	Active       bool
	CreatedAt    time.Time
}
