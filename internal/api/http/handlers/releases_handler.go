package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/service"
)

// ReleasesHandler serves version checks and OTA config to clients.
type ReleasesHandler struct {
	releases *service.ReleaseService
}

// NewReleasesHandler constructs handler.
func NewReleasesHandler(releaseService *service.ReleaseService) *ReleasesHandler {
	return &ReleasesHandler{releases: releaseService}
}

// Version handles GET /version, the client's startup update check.
func (h *ReleasesHandler) Version(c *fiber.Ctx) error {
	info, err := h.releases.Current(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(releaseResponse(info))
}

// Config handles GET /version/config, serving the OTA config snapshot.
func (h *ReleasesHandler) Config(c *fiber.Ctx) error {
	snapshot, err := h.releases.ConfigSnapshot(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(snapshot)
}

func releaseResponse(info *domain.ReleaseInfo) dto.ReleaseResponse {
	resp := dto.ReleaseResponse{
		CurrentVersion: info.CurrentVersion,
		MinVersion:     info.MinVersion,
		ForceUpdate:    info.ForceUpdate,
		DownloadURL:    info.DownloadURL,
		ReleaseNotes:   info.ReleaseNotes,
	}
	if !info.UpdatedAt.IsZero() {
		updatedAt := info.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
