package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus represents the status of a single numbered ticket
type TicketStatus string

const (
	TicketStatusAvailable TicketStatus = "AVAILABLE"
	TicketStatusReserved  TicketStatus = "RESERVED"
	TicketStatusPaid      TicketStatus = "PAID"
)

// Ticket represents one purchasable numbered slot within a campaign.
// The (campaignId, number) pair is unique. BuyerID and TransactionID
// are unset while the ticket is AVAILABLE; a PAID ticket is never
// released or reassigned.
type Ticket struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID    primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Number        int                `bson:"number" json:"number"`
	Status        TicketStatus       `bson:"status" json:"status"`
	BuyerID       primitive.ObjectID `bson:"buyerId,omitempty" json:"buyerId,omitempty"`
	TransactionID primitive.ObjectID `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	ReservedAt    time.Time          `bson:"reservedAt,omitempty" json:"reservedAt,omitempty"`
	PaidAt        time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
