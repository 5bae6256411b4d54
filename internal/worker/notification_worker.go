package worker

import (
	"context"

	"github.com/spec-kit/pokewiki/internal/service"
)

// StartNotificationWorker registers notification handlers and launches
// the queue drain goroutine.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	go notificationService.Run(ctx)
}
