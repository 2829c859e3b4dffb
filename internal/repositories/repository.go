package repositories

import (
	"context"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizerRepository defines the interface for organizer account operations
type OrganizerRepository interface {
	Create(ctx context.Context, organizer *models.Organizer) error
	FindByEmail(ctx context.Context, email string) (*models.Organizer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error)
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	FindBySlug(ctx context.Context, slug string) (*models.Campaign, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Campaign, error)
	// UpdateStatus applies a conditional status transition and reports
	// whether exactly one campaign moved from one of the given states.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.CampaignStatus, to models.CampaignStatus) (bool, error)
	// IncrementTotalRaised atomically adds amount to totalRaised.
	IncrementTotalRaised(ctx context.Context, id primitive.ObjectID, amount float64) error
	// MarkDrawn transitions an ACTIVE or PAUSED campaign to DRAWN,
	// stamping drawnAt.
	MarkDrawn(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// TicketRepository defines the interface for the ticket pool. Reserve,
// Release and MarkPaid are conditional bulk updates: the returned count
// is the number of tickets actually transitioned, and callers must
// treat count < requested as a conflict.
type TicketRepository interface {
	CreateMany(ctx context.Context, tickets []*models.Ticket) error
	// Reserve transitions AVAILABLE tickets to RESERVED for the given
	// buyer and transaction. Only tickets currently AVAILABLE are
	// touched; the count of transitioned tickets is returned.
	Reserve(ctx context.Context, campaignID primitive.ObjectID, numbers []int, buyerID, transactionID primitive.ObjectID, now time.Time) (int64, error)
	// Release returns RESERVED tickets held by the given transaction to
	// AVAILABLE, clearing buyer and timestamps. PAID tickets are never
	// touched.
	Release(ctx context.Context, campaignID, transactionID primitive.ObjectID) (int64, error)
	// MarkPaid transitions RESERVED tickets held by the given
	// transaction to PAID.
	MarkPaid(ctx context.Context, campaignID, transactionID primitive.ObjectID, now time.Time) (int64, error)
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Ticket, error)
	// FindPaidByCampaign returns PAID tickets ordered by number.
	FindPaidByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Ticket, error)
	CountByStatus(ctx context.Context, campaignID primitive.ObjectID, status models.TicketStatus) (int64, error)
}

// BuyerRepository defines the interface for buyer identity operations
type BuyerRepository interface {
	// FindOrCreate resolves a buyer by (campaignId, whatsapp), creating
	// the document when absent and refreshing name/email when present.
	FindOrCreate(ctx context.Context, buyer *models.Buyer) (*models.Buyer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error)
}

// TransactionRepository defines the interface for checkout transactions
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Transaction, error)
	FindExpiredPending(ctx context.Context, now time.Time) ([]*models.Transaction, error)
	// MarkPaid conditionally transitions PENDING to PAID. Returns false
	// when the transaction was already in a terminal state.
	MarkPaid(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error)
	// MarkCancelled conditionally transitions PENDING to CANCELLED.
	MarkCancelled(ctx context.Context, id primitive.ObjectID, now time.Time) (bool, error)
	SetPaymentArtifacts(ctx context.Context, id primitive.ObjectID, paymentID, qrCode, qrCodeCopy string) error
	CountPendingByBuyer(ctx context.Context, campaignID, buyerID primitive.ObjectID) (int64, error)
}

// PrizeRepository defines the interface for prize data operations
type PrizeRepository interface {
	CreateMany(ctx context.Context, prizes []*models.Prize) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Prize, error)
	CountUndrawn(ctx context.Context, campaignID primitive.ObjectID) (int64, error)
	// SetWinner records the winner on a prize whose winner is still
	// unset. Returns false when the prize was already drawn.
	SetWinner(ctx context.Context, prizeID, buyerID primitive.ObjectID, winnerNumber int, winnerName string, now time.Time) (bool, error)
}

// DrawAuditRepository defines the interface for draw audit records
type DrawAuditRepository interface {
	Create(ctx context.Context, audit *models.DrawAudit) error
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.DrawAudit, error)
}

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID, page, limit int) ([]*models.Notification, error)
}
