package worker

import (
	"context"
	"encoding/json"

	"github.com/seniorcare/admin-api/internal/email"
	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/service/notification"
	"github.com/seniorcare/admin-api/pkg/logger"
	"github.com/seniorcare/admin-api/pkg/messaging"
)

// NotificationDeliveryWorker consumes notification events from the broker
// and delivers them by email. Failed deliveries stay pending and are
// retried the next time an event for them is published; the API side never
// blocks on SMTP.
type NotificationDeliveryWorker struct {
	broker  messaging.Broker
	email   email.Service
	service *notification.Service
	logger  *logger.Logger
}

func NewNotificationDeliveryWorker(broker messaging.Broker, emailSvc email.Service, service *notification.Service, logger *logger.Logger) *NotificationDeliveryWorker {
	return &NotificationDeliveryWorker{
		broker:  broker,
		email:   emailSvc,
		service: service,
		logger:  logger,
	}
}

func (w *NotificationDeliveryWorker) Start(ctx context.Context) error {
	messages, err := w.broker.Subscribe(ctx, notification.EventChannel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-messages:
			if !ok {
				return nil
			}
			w.handle(ctx, payload)
		}
	}
}

func (w *NotificationDeliveryWorker) handle(ctx context.Context, payload []byte) {
	var event model.NotificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.Error(err, "failed to decode notification event")
		return
	}

	if err := w.email.SendNotification(ctx, event.ReceiverEmail, event.Message); err != nil {
		w.logger.Error(err, "failed to deliver notification", "notification_id", event.NotificationID)
		return
	}

	if err := w.service.MarkSent(ctx, event.NotificationID); err != nil {
		w.logger.Error(err, "failed to mark notification as sent", "notification_id", event.NotificationID)
	}
}
