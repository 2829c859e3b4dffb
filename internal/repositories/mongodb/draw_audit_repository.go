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

// Compile-time check to ensure DrawAuditRepository implements the interface
var _ repositories.DrawAuditRepository = (*DrawAuditRepository)(nil)

// DrawAuditRepository handles MongoDB operations for DrawAudit
type DrawAuditRepository struct {
	collection *mongo.Collection
}

// NewDrawAuditRepository creates a new DrawAuditRepository
func NewDrawAuditRepository(db *mongo.Database) *DrawAuditRepository {
	return &DrawAuditRepository{
		collection: db.Collection("draw_audits"),
	}
}

// Create inserts a new draw audit record
func (r *DrawAuditRepository) Create(ctx context.Context, audit *models.DrawAudit) error {
	audit.ID = primitive.NewObjectID()
	audit.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, audit)
	return err
}

// FindByCampaign retrieves the draw audits of a campaign, newest first
func (r *DrawAuditRepository) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.DrawAudit, error) {
	var audits []*models.DrawAudit
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"campaignId": campaignID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &audits); err != nil {
		return nil, err
	}
	if audits == nil {
		audits = []*models.DrawAudit{}
	}
	return audits, nil
}
