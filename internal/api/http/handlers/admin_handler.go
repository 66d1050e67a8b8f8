package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/service"
)

const msPerHour = int64(60 * 60 * 1000)

// AdminHandler exposes operator endpoints: login, account management,
// license grants and release updates.
type AdminHandler struct {
	auth      *service.AuthService
	directory *service.DirectoryService
	licenses  *service.LicenseService
	releases  *service.ReleaseService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, directory *service.DirectoryService, licenses *service.LicenseService, releases *service.ReleaseService) *AdminHandler {
	return &AdminHandler{auth: authService, directory: directory, licenses: licenses, releases: releases}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	token, exp, err := h.auth.AdminLogin(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// ListAccounts handles GET /admin/users.
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	overviews, err := h.directory.ListAccounts(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	summaries := make([]dto.AccountSummary, 0, len(overviews))
	for _, overview := range overviews {
		summary := dto.AccountSummary{
			ID:           overview.Account.ID,
			Username:     overview.Account.Username,
			FirstName:    overview.Account.FirstName,
			LastName:     overview.Account.LastName,
			Email:        overview.Account.Email,
			Phone:        overview.Account.Phone,
			RegisteredIP: overview.Account.RegisteredIP,
			IsActive:     overview.Account.Active,
			CreatedAt:    overview.Account.CreatedAt,
		}
		if overview.Grant != nil {
			summary.License = &dto.AccountLicenseSummary{
				Kind:      string(overview.Grant.Kind),
				ExpiresAt: overview.Grant.ExpiresAt,
				Active:    overview.Grant.Active,
			}
		}
		summaries = append(summaries, summary)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"accounts": summaries}})
}

// SetAccountActive handles PATCH /admin/users/:id.
func (h *AdminHandler) SetAccountActive(c *fiber.Ctx) error {
	var req dto.SetAccountActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.IsActive == nil {
		return fiber.NewError(http.StatusBadRequest, "isActive (true/false) required")
	}

	if err := h.directory.SetAccountActive(c.Context(), c.Params("id"), *req.IsActive); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// AssignLicense handles POST /admin/users/:id/license.
func (h *AdminHandler) AssignLicense(c *fiber.Ctx) error {
	var req dto.AssignLicenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	expiresAt, err := h.licenses.Assign(c.Context(), c.Params("id"), domain.LicenseKind(req.Kind))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ExpiryResponse{ExpiresAt: expiresAt}})
}

// RevokeLicense handles DELETE /admin/users/:id/license.
func (h *AdminHandler) RevokeLicense(c *fiber.Ctx) error {
	if err := h.licenses.Revoke(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"revoked": true}})
}

// AddLicenseTime handles POST /admin/users/:id/license/add-time.
func (h *AdminHandler) AddLicenseTime(c *fiber.Ctx) error {
	var req dto.AddTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	extraMs := req.ExtraMs
	if extraMs == 0 {
		extraMs = int64(req.Days)*24*msPerHour + int64(req.Hours)*msPerHour
	}

	expiresAt, err := h.licenses.AddTime(c.Context(), c.Params("id"), extraMs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ExpiryResponse{ExpiresAt: expiresAt}})
}

// GetRelease handles GET /admin/version.
func (h *AdminHandler) GetRelease(c *fiber.Ctx) error {
	info, err := h.releases.Current(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": releaseResponse(info)})
}

// UpdateRelease handles PUT /admin/version.
func (h *AdminHandler) UpdateRelease(c *fiber.Ctx) error {
	var req dto.ReleaseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	info, err := h.releases.Update(c.Context(), service.ReleaseUpdateInput{
		CurrentVersion: req.CurrentVersion,
		MinVersion:     req.MinVersion,
		ForceUpdate:    req.ForceUpdate,
		DownloadURL:    req.DownloadURL,
		ReleaseNotes:   req.ReleaseNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": releaseResponse(info)})
}
