// Package worker wires background event consumers at startup.
package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the event
// dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker started")
}
