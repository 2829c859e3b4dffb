package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize represents one awardable item tied to a campaign. Position is
// the display order only; prizes may be drawn in any order. Once a
// winner is recorded the prize is immutable.
type Prize struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID   primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Position     int                `bson:"position" json:"position"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	WinnerID     primitive.ObjectID `bson:"winnerId,omitempty" json:"winnerId,omitempty"`
	WinnerNumber *int               `bson:"winnerNumber,omitempty" json:"winnerNumber,omitempty"`
	WinnerName   string             `bson:"winnerName,omitempty" json:"winnerName,omitempty"`
	DrawnAt      time.Time          `bson:"drawnAt,omitempty" json:"drawnAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Drawn reports whether a winner has already been recorded.
func (p *Prize) Drawn() bool {
	return !p.WinnerID.IsZero()
}
