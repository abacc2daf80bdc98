package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/events"
)

// StartAuditWorker subscribes a structured-log sink to every auth audit
// event. Handlers run synchronously on the dispatching request.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}

	log := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("subject", event.Subject),
			zap.String("role", string(event.Role)),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	dispatcher.Subscribe(events.EventLoginSucceeded, log)
	dispatcher.Subscribe(events.EventLoginFailed, log)
	dispatcher.Subscribe(events.EventTokenRefreshed, log)
	dispatcher.Subscribe(events.EventPasswordChanged, log)
}
