package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/dto"
	"github.com/spec-kit/license-service/internal/auth"
	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/service"
)

// LicensesHandler exposes validation and offline policy endpoints to clients.
type LicensesHandler struct {
	licenses *service.LicenseService
}

// NewLicensesHandler constructs handler.
func NewLicensesHandler(licenseService *service.LicenseService) *LicensesHandler {
	return &LicensesHandler{licenses: licenseService}
}

// Validate handles POST /license/validate. The client calls this on every
// startup; the verdict covers the authenticated account.
func (h *LicensesHandler) Validate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return fiber.NewError(http.StatusForbidden, "account required")
	}

	verdict, validatedAt, err := h.licenses.Validate(c.Context(), principal.Account.ID)
	if err != nil {
		return err
	}

	return c.JSON(verdictResponse(verdict, validatedAt))
}

// OfflinePolicy handles GET /license/offline-policy. Public: the client needs
// the grace window before it can authenticate while offline.
func (h *LicensesHandler) OfflinePolicy(c *fiber.Ctx) error {
	policy := h.licenses.OfflinePolicy()
	return c.JSON(dto.OfflinePolicyResponse{
		MaxOfflineMs:    policy.MaxOfflineMs(),
		MaxOfflineHours: policy.MaxOfflineHours(),
	})
}

func verdictResponse(verdict domain.Verdict, validatedAt int64) dto.ValidateResponse {
	resp := dto.ValidateResponse{
		Valid:       verdict.Valid,
		ValidatedAt: validatedAt,
	}
	if verdict.Valid {
		resp.License = &dto.LicenseInfo{
			Kind:      string(verdict.Kind),
			ExpiresAt: verdict.ExpiresAt,
		}
		return resp
	}
	resp.Reason = string(verdict.Reason)
	resp.ExpiresAt = verdict.ExpiresAt
	return resp
}
