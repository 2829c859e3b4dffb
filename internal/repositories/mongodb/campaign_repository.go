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

// Compile-time check to ensure CampaignRepository implements the interface
var _ repositories.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository handles MongoDB operations for Campaign
type CampaignRepository struct {
	collection *mongo.Collection
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection("campaigns"),
	}
}

// Create inserts a new campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, campaign)
	return err
}

// FindByID finds a campaign by ID
func (r *CampaignRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &campaign, nil
}

// FindBySlug finds a campaign by its URL slug
func (r *CampaignRepository) FindBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&campaign)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &campaign, nil
}

// FindByOwner retrieves all campaigns of an organizer, newest first
func (r *CampaignRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	filter := bson.M{
		"ownerId": ownerID,
		"status":  bson.M{"$ne": models.CampaignStatusDeleted},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}
	return campaigns, nil
}

// UpdateStatus applies a conditional status transition. The from-state
// filter makes the transition one-directional under concurrency.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.CampaignStatus, to models.CampaignStatus) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": from},
	}
	set := bson.M{
		"status":    to,
		"updatedAt": now,
	}
	// First activation stamps activatedAt; resuming from PAUSED does not.
	if to == models.CampaignStatusActive && len(from) == 1 && from[0] == models.CampaignStatusDraft {
		set["activatedAt"] = now
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// IncrementTotalRaised atomically adds amount to the campaign total.
// $inc avoids read-modify-write lost updates under concurrent payment
// confirmations.
func (r *CampaignRepository) IncrementTotalRaised(ctx context.Context, id primitive.ObjectID, amount float64) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"totalRaised": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkDrawn finalizes a campaign once its last prize has been drawn
func (r *CampaignRepository) MarkDrawn(ctx context.Context, id primitive.ObjectID) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": []models.CampaignStatus{models.CampaignStatusActive, models.CampaignStatusPaused, models.CampaignStatusClosed}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.CampaignStatusDrawn,
			"drawnAt":   now,
			"updatedAt": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}
