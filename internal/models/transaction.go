package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionStatus represents the status of a checkout attempt
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusPaid      TransactionStatus = "PAID"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction represents one checkout attempt covering one or more
// tickets. Numbers and Amount are fixed at creation and never
// recomputed. Transactions are mutated only by payment confirmation,
// expiry or manual cancellation, and are never deleted.
type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID  primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	BuyerID     primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	Numbers     []int              `bson:"numbers" json:"numbers"`
	Amount      float64            `bson:"amount" json:"amount"`
	Status      TransactionStatus  `bson:"status" json:"status"`
	PaymentID   string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	QRCode      string             `bson:"qrCode,omitempty" json:"qrCode,omitempty"`
	QRCodeCopy  string             `bson:"qrCodeCopy,omitempty" json:"qrCodeCopy,omitempty"`
	ExpiresAt   time.Time          `bson:"expiresAt" json:"expiresAt"`
	PaidAt      time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CancelledAt time.Time          `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsExpired reports whether the transaction's reservation window has
// passed relative to now. Expiry is soft: it only takes effect when
// the sweeper cancels the transaction.
func (t *Transaction) IsExpired(now time.Time) bool {
	return t.Status == TransactionStatusPending && t.ExpiresAt.Before(now)
}
