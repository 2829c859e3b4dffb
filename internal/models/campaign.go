package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignStatus represents the lifecycle status of a campaign
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "DRAFT"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusClosed    CampaignStatus = "CLOSED"
	CampaignStatusDrawn     CampaignStatus = "DRAWN"
	CampaignStatusCancelled CampaignStatus = "CANCELLED"
	CampaignStatusDeleted   CampaignStatus = "DELETED"
)

// Campaign represents one raffle with a fixed ticket count and price.
// TotalNumbers is immutable once the campaign is activated and its
// tickets have been generated.
type Campaign struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug               string             `bson:"slug" json:"slug"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	OwnerID            primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	TotalNumbers       int                `bson:"totalNumbers" json:"totalNumbers"`
	NumberPrice        float64            `bson:"numberPrice" json:"numberPrice"`
	MaxPerBuyer        int                `bson:"maxPerBuyer" json:"maxPerBuyer"` // 0 = unlimited
	ReservationMinutes int                `bson:"reservationMinutes" json:"reservationMinutes"`
	Status             CampaignStatus     `bson:"status" json:"status"`
	TotalRaised        float64            `bson:"totalRaised" json:"totalRaised"`
	ActivatedAt        time.Time          `bson:"activatedAt,omitempty" json:"activatedAt,omitempty"`
	DrawnAt            time.Time          `bson:"drawnAt,omitempty" json:"drawnAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReservationWindow returns the reservation expiry window for this campaign.
func (c *Campaign) ReservationWindow() time.Duration {
	minutes := c.ReservationMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}
