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

// Compile-time check to ensure TicketRepository implements the interface
var _ repositories.TicketRepository = (*TicketRepository)(nil)

// TicketRepository handles MongoDB operations for the ticket pool.
// All state transitions are conditional bulk updates; the ModifiedCount
// of each update is the concurrency contract with the caller.
type TicketRepository struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{
		collection: db.Collection("tickets"),
	}
}

// CreateMany bulk-inserts tickets, used once at campaign activation
func (r *TicketRepository) CreateMany(ctx context.Context, tickets []*models.Ticket) error {
	docs := make([]interface{}, 0, len(tickets))
	now := time.Now()
	for _, ticket := range tickets {
		ticket.ID = primitive.NewObjectID()
		ticket.CreatedAt = now
		ticket.UpdatedAt = now
		docs = append(docs, ticket)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Reserve transitions AVAILABLE tickets to RESERVED. The filter pins
// status=AVAILABLE so concurrent reservations of overlapping numbers
// race on the same rows and only one update wins each row.
func (r *TicketRepository) Reserve(ctx context.Context, campaignID primitive.ObjectID, numbers []int, buyerID, transactionID primitive.ObjectID, now time.Time) (int64, error) {
	filter := bson.M{
		"campaignId": campaignID,
		"number":     bson.M{"$in": numbers},
		"status":     models.TicketStatusAvailable,
	}
	update := bson.M{
		"$set": bson.M{
			"status":        models.TicketStatusReserved,
			"buyerId":       buyerID,
			"transactionId": transactionID,
			"reservedAt":    now,
			"updatedAt":     now,
		},
	}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Release returns RESERVED tickets of a transaction to AVAILABLE.
// The status=RESERVED guard keeps a ticket promoted to PAID by a late
// payment confirmation from ever being freed.
func (r *TicketRepository) Release(ctx context.Context, campaignID, transactionID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"campaignId":    campaignID,
		"transactionId": transactionID,
		"status":        models.TicketStatusReserved,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.TicketStatusAvailable,
			"updatedAt": time.Now(),
		},
		"$unset": bson.M{
			"buyerId":       "",
			"transactionId": "",
			"reservedAt":    "",
		},
	}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// MarkPaid transitions the RESERVED tickets of a transaction to PAID
func (r *TicketRepository) MarkPaid(ctx context.Context, campaignID, transactionID primitive.ObjectID, now time.Time) (int64, error) {
	filter := bson.M{
		"campaignId":    campaignID,
		"transactionId": transactionID,
		"status":        models.TicketStatusReserved,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.TicketStatusPaid,
			"paidAt":    now,
			"updatedAt": now,
		},
	}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// FindByCampaign retrieves all tickets of a campaign ordered by number
func (r *TicketRepository) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Ticket, error) {
	return r.find(ctx, bson.M{"campaignId": campaignID})
}

// FindPaidByCampaign retrieves the PAID tickets of a campaign ordered
// by number. This ordering fixes the index space for the draw.
func (r *TicketRepository) FindPaidByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Ticket, error) {
	return r.find(ctx, bson.M{
		"campaignId": campaignID,
		"status":     models.TicketStatusPaid,
	})
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}

// CountByStatus counts tickets of a campaign in the given status
func (r *TicketRepository) CountByStatus(ctx context.Context, campaignID primitive.ObjectID, status models.TicketStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"campaignId": campaignID,
		"status":     status,
	})
}
