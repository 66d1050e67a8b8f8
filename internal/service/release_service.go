package service

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/repository"
)

const (
	defaultVersion = "1.0.0"

	configKeyBaseUserCount = "base_user_count"
)

// ReleaseService distributes client build information and over-the-air config.
// State lives in the database; reads go straight to it and admin updates write
// through, replacing the original design's mutable in-process blob.
type ReleaseService struct {
	releases repository.ReleaseRepository
	appcfg   repository.AppConfigRepository
}

// NewReleaseService constructs the service.
func NewReleaseService(releases repository.ReleaseRepository, appcfg repository.AppConfigRepository) *ReleaseService {
	return &ReleaseService{releases: releases, appcfg: appcfg}
}

// Current returns the distributed release, defaulting when none was ever set.
func (s *ReleaseService) Current(ctx context.Context) (*domain.ReleaseInfo, error) {
	info, err := s.releases.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return &domain.ReleaseInfo{
			CurrentVersion: defaultVersion,
			MinVersion:     defaultVersion,
		}, nil
	}
	return info, nil
}

// ReleaseUpdateInput describes an admin release update.
type ReleaseUpdateInput struct {
	CurrentVersion string
	MinVersion     string
	ForceUpdate    bool
	DownloadURL    string
	ReleaseNotes   string
}

// Update writes the release row through to storage.
func (s *ReleaseService) Update(ctx context.Context, input ReleaseUpdateInput) (*domain.ReleaseInfo, error) {
	info := &domain.ReleaseInfo{
		CurrentVersion: orDefault(input.CurrentVersion, defaultVersion),
		MinVersion:     orDefault(input.MinVersion, defaultVersion),
		ForceUpdate:    input.ForceUpdate,
		DownloadURL:    input.DownloadURL,
		ReleaseNotes:   input.ReleaseNotes,
	}
	if err := s.releases.Upsert(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

// ConfigSnapshot returns the whole OTA config store. Values that parse as JSON
// are returned structured, everything else as the raw string.
func (s *ReleaseService) ConfigSnapshot(ctx context.Context) (map[string]any, error) {
	entries, err := s.appcfg.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]any, len(entries))
	for _, entry := range entries {
		var parsed any
		if err := json.Unmarshal([]byte(entry.Value), &parsed); err == nil {
			snapshot[entry.Key] = parsed
		} else {
			snapshot[entry.Key] = entry.Value
		}
	}
	return snapshot, nil
}

// EnsureDefaults seeds the initial release row on first start.
func (s *ReleaseService) EnsureDefaults(ctx context.Context) error {
	info, err := s.releases.GetCurrent(ctx)
	if err != nil {
		return err
	}
	if info != nil {
		return nil
	}
	_, err = s.Update(ctx, ReleaseUpdateInput{CurrentVersion: defaultVersion, MinVersion: defaultVersion})
	return err
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
