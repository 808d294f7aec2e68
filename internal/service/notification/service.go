package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seniorcare/admin-api/internal/model"
	"github.com/seniorcare/admin-api/internal/repository"
	"github.com/seniorcare/admin-api/internal/service/audit"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
	"github.com/seniorcare/admin-api/pkg/logger"
	"github.com/seniorcare/admin-api/pkg/messaging"
)

// EventChannel is the broker channel the delivery worker subscribes to.
const EventChannel = "notifications"

type Service struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	broker   messaging.Broker
	auditor  *audit.Service
	logger   *logger.Logger
}

func NewService(repo repository.NotificationRepository, userRepo repository.UserRepository, broker messaging.Broker, auditor *audit.Service, logger *logger.Logger) *Service {
	return &Service{repo: repo, userRepo: userRepo, broker: broker, auditor: auditor, logger: logger}
}

// Send persists the notification and hands delivery off to the worker
// through the broker. Delivery is best effort: a broker outage leaves the
// row pending, it does not fail the request.
func (s *Service) Send(ctx context.Context, actor model.Actor, req *model.CreateNotificationRequest) (*model.Notification, error) {
	receiver, err := s.userRepo.Get(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		ID:             uuid.New(),
		OrganizationID: actor.OrganizationID,
		SenderID:       actor.UserID,
		ReceiverID:     req.ReceiverID,
		Message:        req.Message,
		Status:         model.NotificationStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	event := model.NotificationEvent{
		NotificationID: notification.ID,
		OrganizationID: notification.OrganizationID,
		ReceiverID:     receiver.ID,
		ReceiverEmail:  receiver.Email,
		Message:        notification.Message,
	}
	if err := s.broker.Publish(ctx, EventChannel, event); err != nil {
		s.logger.Error(err, "failed to publish notification event")
	}

	if err := s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionSendNotification, model.AuditEntityNotification, notification.ID,
		"Notification sent to user: "+receiver.Email); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByReceiver(ctx context.Context, receiverID uuid.UUID) ([]*model.Notification, error) {
	return s.repo.ListByReceiver(ctx, receiverID)
}

// MarkRead flips a notification to read. Only the receiver may do this.
func (s *Service) MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	notification, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if notification.ReceiverID != actor.UserID {
		return apperrors.Forbidden("only the receiver can mark a notification as read")
	}

	if err := s.repo.UpdateStatus(ctx, id, model.NotificationStatusRead); err != nil {
		return err
	}

	return s.auditor.RecordEvent(ctx, actor.OrganizationID, actor.UserID,
		model.AuditActionReadNotification, model.AuditEntityNotification, id,
		"Notification marked as read")
}

// MarkSent is called by the delivery worker after a successful send.
func (s *Service) MarkSent(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, model.NotificationStatusSent)
}
