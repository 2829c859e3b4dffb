package mongodb

import (
	"context"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure OrganizerRepository implements the interface
var _ repositories.OrganizerRepository = (*OrganizerRepository)(nil)

// OrganizerRepository handles MongoDB operations for Organizer
type OrganizerRepository struct {
	collection *mongo.Collection
}

// NewOrganizerRepository creates a new OrganizerRepository
func NewOrganizerRepository(db *mongo.Database) *OrganizerRepository {
	return &OrganizerRepository{
		collection: db.Collection("organizers"),
	}
}

// Create inserts a new organizer
func (r *OrganizerRepository) Create(ctx context.Context, organizer *models.Organizer) error {
	organizer.ID = primitive.NewObjectID()
	organizer.CreatedAt = time.Now()
	organizer.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, organizer)
	return err
}

// FindByEmail finds an organizer by email
func (r *OrganizerRepository) FindByEmail(ctx context.Context, email string) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&organizer)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &organizer, nil
}

// FindByID finds an organizer by ID
func (r *OrganizerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&organizer)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &organizer, nil
}
