package worker

import (
	"github.com/spec-kit/gis-site-service/internal/events"
	"github.com/spec-kit/gis-site-service/internal/service"
)

// StartNotificationWorker registers notification handlers on the dispatcher and returns a
// function that blocks until in-flight notifications have finished.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) (drain func()) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	return func() {
		if dispatcher != nil {
			dispatcher.Wait()
		}
	}
}
