package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawAudit records one draw attempt for traceability. It is written
// before the prize mutation, so an audit row may exist for a draw that
// never committed a winner (crash between audit and commit); such rows
// are harmless and the draw is safe to retry.
type DrawAudit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID    primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	PrizeID       primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	EligibleCount int                `bson:"eligibleCount" json:"eligibleCount"`
	RandomValue   uint32             `bson:"randomValue" json:"randomValue"`
	SelectedIndex int                `bson:"selectedIndex" json:"selectedIndex"`
	WinningNumber int                `bson:"winningNumber" json:"winningNumber"`
	BuyerID       primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	DrawnBy       primitive.ObjectID `bson:"drawnBy" json:"drawnBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
