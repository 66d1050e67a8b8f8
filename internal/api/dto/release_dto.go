package dto

import "time"

// ReleaseResponse describes the distributed client build.
type ReleaseResponse struct {
	CurrentVersion string     `json:"currentVersion"`
	MinVersion     string     `json:"minVersion"`
	ForceUpdate    bool       `json:"forceUpdate"`
	DownloadURL    string     `json:"downloadUrl"`
	ReleaseNotes   string     `json:"releaseNotes"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// ReleaseUpdateRequest payload for admin release updates.
type ReleaseUpdateRequest struct {
	CurrentVersion string `json:"currentVersion"`
	MinVersion     string `json:"minVersion"`
	ForceUpdate    bool   `json:"forceUpdate"`
	DownloadURL    string `json:"downloadUrl"`
	ReleaseNotes   string `json:"releaseNotes"`
}
