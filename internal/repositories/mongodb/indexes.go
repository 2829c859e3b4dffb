package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the engine's correctness depends
// on. The unique (campaignId, number) index backs the ticket pool's
// uniqueness invariant; the unique (campaignId, whatsapp) index backs
// the per-campaign buyer identity.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"organizers": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"campaigns": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		},
		"tickets": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "transactionId", Value: 1}}},
		},
		"buyers": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "whatsapp", Value: 1}}, Options: unique},
		},
		"transactions": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}}},
		},
		"prizes": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "position", Value: 1}}},
		},
		"draw_audits": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
