package worker

import (
	"github.com/spec-kit/license-service/internal/service"
)

// StartAuditWorker registers audit log handlers for license lifecycle events.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
