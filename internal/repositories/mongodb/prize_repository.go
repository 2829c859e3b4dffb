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

// Compile-time check to ensure PrizeRepository implements the interface
var _ repositories.PrizeRepository = (*PrizeRepository)(nil)

// PrizeRepository handles MongoDB operations for Prize
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) *PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// CreateMany inserts the prizes of a campaign in one batch
func (r *PrizeRepository) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	docs := make([]interface{}, 0, len(prizes))
	now := time.Now()
	for _, prize := range prizes {
		prize.ID = primitive.NewObjectID()
		prize.CreatedAt = now
		prize.UpdatedAt = now
		docs = append(docs, prize)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByID finds a prize by ID
func (r *PrizeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	var prize models.Prize
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&prize)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &prize, nil
}

// FindByCampaign retrieves the prizes of a campaign ordered by position
func (r *PrizeRepository) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Prize, error) {
	var prizes []*models.Prize
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"campaignId": campaignID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*models.Prize{}
	}
	return prizes, nil
}

// CountUndrawn counts prizes of a campaign without a recorded winner
func (r *PrizeRepository) CountUndrawn(ctx context.Context, campaignID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"campaignId": campaignID,
		"winnerId":   bson.M{"$exists": false},
	})
}

// SetWinner records the winner on a not-yet-drawn prize. The
// winnerId-unset filter makes a prize drawable exactly once.
func (r *PrizeRepository) SetWinner(ctx context.Context, prizeID, buyerID primitive.ObjectID, winnerNumber int, winnerName string, now time.Time) (bool, error) {
	filter := bson.M{
		"_id":      prizeID,
		"winnerId": bson.M{"$exists": false},
	}
	update := bson.M{
		"$set": bson.M{
			"winnerId":     buyerID,
			"winnerNumber": winnerNumber,
			"winnerName":   winnerName,
			"drawnAt":      now,
			"updatedAt":    now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}
