package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Buyer represents a buyer identity scoped to one campaign. The same
// person buying in two campaigns yields two Buyer documents; within a
// campaign the buyer is keyed by whatsapp number and may recur across
// transactions.
type Buyer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Name       string             `bson:"name" json:"name"`
	Whatsapp   string             `bson:"whatsapp" json:"whatsapp"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
