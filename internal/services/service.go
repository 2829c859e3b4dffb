package services

import (
	"context"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines the interface for organizer authentication
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Organizer, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetOrganizer(ctx context.Context, id primitive.ObjectID) (*models.Organizer, error)
}

// CreateCampaignInput is the organizer's payload for a new campaign
type CreateCampaignInput struct {
	Title              string
	Description        string
	TotalNumbers       int
	NumberPrice        float64
	MaxPerBuyer        int
	ReservationMinutes int
	Prizes             []PrizeInput
}

// PrizeInput describes one prize at campaign creation
type PrizeInput struct {
	Name        string
	Description string
}

// CampaignPage is the public view of a campaign: the campaign itself,
// its prizes, and the per-number status grid (no buyer identities).
type CampaignPage struct {
	Campaign *models.Campaign      `json:"campaign"`
	Prizes   []*models.Prize       `json:"prizes"`
	Numbers  []models.TicketStatus `json:"numbers"`
}

// CampaignStats is the organizer's dashboard view of one campaign
type CampaignStats struct {
	TotalRaised      float64 `json:"totalRaised"`
	AvailableTickets int64   `json:"availableTickets"`
	ReservedTickets  int64   `json:"reservedTickets"`
	PaidTickets      int64   `json:"paidTickets"`
	UndrawnPrizes    int64   `json:"undrawnPrizes"`
}

// CampaignService defines the interface for campaign lifecycle operations
type CampaignService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, input CreateCampaignInput) (*models.Campaign, error)
	// Activate generates the ticket pool and opens the campaign for
	// checkout. TotalNumbers is immutable from this point on.
	Activate(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*models.Campaign, error)
	Pause(ctx context.Context, ownerID, campaignID primitive.ObjectID) error
	Resume(ctx context.Context, ownerID, campaignID primitive.ObjectID) error
	GetOwned(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*models.Campaign, error)
	ListOwned(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Campaign, error)
	GetPublicPage(ctx context.Context, slug string) (*CampaignPage, error)
	GetStats(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*CampaignStats, error)
	ListTransactions(ctx context.Context, ownerID, campaignID primitive.ObjectID, page, limit int) ([]*models.Transaction, error)
}

// CheckoutInput is a buyer's reservation request
type CheckoutInput struct {
	Numbers  []int
	Name     string
	Whatsapp string
	Email    string
}

// CheckoutResult is returned to the buyer on a successful checkout
type CheckoutResult struct {
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	QRCode        string    `json:"qrCode"`
	QRCodeCopy    string    `json:"qrCodeCopy"`
	ExpiresAt     time.Time `json:"expiresAt"`
	PaymentError  string    `json:"paymentError,omitempty"`
}

// ReservationService defines the interface for buyer checkout
type ReservationService interface {
	Checkout(ctx context.Context, slug string, input CheckoutInput) (*CheckoutResult, error)
}

// PaymentService defines the interface for payment confirmation and
// transaction cancellation
type PaymentService interface {
	// ConfirmManual is the organizer-triggered confirmation path.
	ConfirmManual(ctx context.Context, ownerID, transactionID primitive.ObjectID) error
	// HandleWebhook resolves a provider payment id and, when the
	// payment is approved, runs the same confirmation transition.
	HandleWebhook(ctx context.Context, providerPaymentID string) error
	// Cancel is the organizer-triggered equivalent of expiry for a
	// single pending transaction.
	Cancel(ctx context.Context, ownerID, transactionID primitive.ObjectID) error
}

// SweepResult reports one sweeper pass
type SweepResult struct {
	CancelledTransactions int `json:"cancelledTransactions"`
	FreedNumbers          int `json:"freedNumbers"`
}

// SweeperService defines the interface for the expiry sweeper
type SweeperService interface {
	SweepExpired(ctx context.Context) (*SweepResult, error)
}

// DrawService defines the interface for winner selection
type DrawService interface {
	// DrawPrize selects a winner for one not-yet-drawn prize among the
	// campaign's PAID tickets and records it durably.
	DrawPrize(ctx context.Context, ownerID, campaignID, prizeID primitive.ObjectID) (*models.Prize, error)
	ListAudits(ctx context.Context, ownerID, campaignID primitive.ObjectID) ([]*models.DrawAudit, error)
}

// NotificationService defines the interface for buyer-facing WhatsApp
// notifications. All sends are best effort: failures are recorded and
// logged, never propagated to the triggering operation.
type NotificationService interface {
	SendReservationCreated(ctx context.Context, campaign *models.Campaign, buyer *models.Buyer, transaction *models.Transaction)
	SendPaymentConfirmed(ctx context.Context, campaign *models.Campaign, buyer *models.Buyer, transaction *models.Transaction)
	SendWinnerAnnouncement(ctx context.Context, campaign *models.Campaign, buyer *models.Buyer, prize *models.Prize, winningNumber int)
}
