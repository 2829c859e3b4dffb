package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification message types
const (
	NotificationTypeReservation = "RESERVATION_CREATED"
	NotificationTypePayment     = "PAYMENT_CONFIRMED"
	NotificationTypeWinner      = "WINNER_ANNOUNCEMENT"
)

// Notification statuses
const (
	NotificationStatusSent   = "SENT"
	NotificationStatusFailed = "FAILED"
)

// Notification records one outbound WhatsApp message attempt.
// Delivery is best effort; failures are recorded here and logged,
// never surfaced to the triggering operation.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Whatsapp   string             `bson:"whatsapp" json:"whatsapp"`
	Type       string             `bson:"type" json:"type"`
	Content    string             `bson:"content" json:"content"`
	Status     string             `bson:"status" json:"status"`
	MessageID  string             `bson:"messageId,omitempty" json:"messageId,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	SentAt     time.Time          `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
