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

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository handles MongoDB operations for Transaction.
// The PENDING-state filter on MarkPaid and MarkCancelled is what makes
// payment confirmation and cancellation idempotent: whichever update
// matches first wins, every later attempt modifies zero documents.
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create inserts a new transaction. A pre-assigned id is kept: the
// reservation engine generates the id before reserving tickets so the
// pool rows can be tagged with it.
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, transaction)
	return err
}

// FindByID finds a transaction by ID
func (r *TransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transaction)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &transaction, nil
}

// FindByCampaign retrieves transactions of a campaign with pagination,
// newest first
func (r *TransactionRepository) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Transaction, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var transactions []*models.Transaction
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"campaignId": campaignID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	return transactions, nil
}

// FindExpiredPending retrieves PENDING transactions whose reservation
// window has passed
func (r *TransactionRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	filter := bson.M{
		"status":    models.TransactionStatusPending,
		"expiresAt": bson.M{"$lt": now},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	return transactions, nil
}

// MarkPaid conditionally transitions PENDING to PAID
func (r *TransactionRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.TransactionStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.TransactionStatusPaid,
			"paidAt":    now,
			"updatedAt": now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// MarkCancelled conditionally transitions PENDING to CANCELLED
func (r *TransactionRepository) MarkCancelled(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.TransactionStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":      models.TransactionStatusCancelled,
			"cancelledAt": now,
			"updatedAt":   now,
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// SetPaymentArtifacts stores the provider payment id and PIX QR payload
func (r *TransactionRepository) SetPaymentArtifacts(ctx context.Context, id primitive.ObjectID, paymentID, qrCode, qrCodeCopy string) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"paymentId":  paymentID,
			"qrCode":     qrCode,
			"qrCodeCopy": qrCodeCopy,
			"updatedAt":  time.Now(),
		},
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

// CountPendingByBuyer counts open transactions of a buyer in a campaign
func (r *TransactionRepository) CountPendingByBuyer(ctx context.Context, campaignID, buyerID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"campaignId": campaignID,
		"buyerId":    buyerID,
		"status":     models.TransactionStatusPending,
	})
}
