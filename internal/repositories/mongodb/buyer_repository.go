package mongodb

import (
	"context"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure BuyerRepository implements the interface
var _ repositories.BuyerRepository = (*BuyerRepository)(nil)

// BuyerRepository handles MongoDB operations for Buyer
type BuyerRepository struct {
	collection *mongo.Collection
}

// NewBuyerRepository creates a new BuyerRepository
func NewBuyerRepository(db *mongo.Database) *BuyerRepository {
	return &BuyerRepository{
		collection: db.Collection("buyers"),
	}
}

// FindOrCreate upserts a buyer keyed by (campaignId, whatsapp). A
// returning buyer keeps their document; name and email are refreshed
// from the latest checkout.
func (r *BuyerRepository) FindOrCreate(ctx context.Context, buyer *models.Buyer) (*models.Buyer, error) {
	now := time.Now()
	filter := bson.M{
		"campaignId": buyer.CampaignID,
		"whatsapp":   buyer.Whatsapp,
	}
	update := bson.M{
		"$set": bson.M{
			"name":      buyer.Name,
			"email":     buyer.Email,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"campaignId": buyer.CampaignID,
			"whatsapp":   buyer.Whatsapp,
			"createdAt":  now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var resolved models.Buyer
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&resolved)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

// FindByID finds a buyer by ID
func (r *BuyerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	var buyer models.Buyer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&buyer)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &buyer, nil
}
