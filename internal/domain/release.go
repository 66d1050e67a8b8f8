package domain

import "time"

// ReleaseInfo describes the currently distributed client build.
type ReleaseInfo struct {
	ID             int64
	CurrentVersion string
	MinVersion     string
	ForceUpdate    bool
	DownloadURL    string
	ReleaseNotes   string
	UpdatedAt      time.Time
}

// ConfigEntry is one key/value pair in the over-the-air config store.
type ConfigEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
