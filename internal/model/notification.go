package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusRead    NotificationStatus = "read"
)

type Notification struct {
	ID             uuid.UUID          `json:"id" db:"id"`
	OrganizationID uuid.UUID          `json:"organization_id" db:"organization_id"`
	SenderID       uuid.UUID          `json:"sender_id" db:"sender_id"`
	ReceiverID     uuid.UUID          `json:"receiver_id" db:"receiver_id"`
	Message        string             `json:"message" db:"message"`
	Status         NotificationStatus `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
}

type CreateNotificationRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
	Message    string    `json:"message" binding:"required,max=1000"`
}

// NotificationEvent is the payload published to the message broker for
// asynchronous fan-out (email delivery by the worker).
type NotificationEvent struct {
	NotificationID uuid.UUID `json:"notification_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	ReceiverID     uuid.UUID `json:"receiver_id"`
	ReceiverEmail  string    `json:"receiver_email"`
	Message        string    `json:"message"`
}
