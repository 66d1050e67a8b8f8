package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/events"
)

// AuditService records license lifecycle events to the structured log so
// operators can reconstruct who had access when.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLicenseAssigned, a.handleLicenseAssigned)
	a.dispatcher.Subscribe(events.EventLicenseExtended, a.handleLicenseExtended)
	a.dispatcher.Subscribe(events.EventLicenseRevoked, a.handleLicenseRevoked)
	a.dispatcher.Subscribe(events.EventAccountStatusChanged, a.handleAccountStatusChanged)
}

func (a *AuditService) handleLicenseAssigned(ctx context.Context, event events.Event) error {
	a.logger.Info("LicenseAssigned", zap.String("account_id", event.AccountID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLicenseExtended(ctx context.Context, event events.Event) error {
	a.logger.Info("LicenseExtended", zap.String("account_id", event.AccountID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLicenseRevoked(ctx context.Context, event events.Event) error {
	a.logger.Info("LicenseRevoked", zap.String("account_id", event.AccountID))
	return nil
}

func (a *AuditService) handleAccountStatusChanged(ctx context.Context, event events.Event) error {
	a.logger.Info("AccountStatusChanged", zap.String("account_id", event.AccountID), zap.Any("payload", event.Payload))
	return nil
}
