package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"github.com/WebuildSoft/myrifa-sub001/internal/utils"
	"github.com/WebuildSoft/myrifa-sub001/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// MaxPendingPerBuyer caps open reservations per buyer per campaign
const MaxPendingPerBuyer = 5

// Compile-time check to ensure ReservationServiceImpl implements ReservationService
var _ ReservationService = (*ReservationServiceImpl)(nil)

// ReservationServiceImpl handles the end-to-end buyer checkout
type ReservationServiceImpl struct {
	campaignRepo    repositories.CampaignRepository
	ticketRepo      repositories.TicketRepository
	buyerRepo       repositories.BuyerRepository
	transactionRepo repositories.TransactionRepository
	provider        payment.Provider
	notifier        NotificationService
}

// NewReservationService creates a new ReservationServiceImpl
func NewReservationService(
	campaignRepo repositories.CampaignRepository,
	ticketRepo repositories.TicketRepository,
	buyerRepo repositories.BuyerRepository,
	transactionRepo repositories.TransactionRepository,
	provider payment.Provider,
	notifier NotificationService,
) *ReservationServiceImpl {
	return &ReservationServiceImpl{
		campaignRepo:    campaignRepo,
		ticketRepo:      ticketRepo,
		buyerRepo:       buyerRepo,
		transactionRepo: transactionRepo,
		provider:        provider,
		notifier:        notifier,
	}
}

// Checkout validates the buyer's selection, reserves the tickets
// atomically, creates the PENDING transaction and requests the PIX
// charge. A provider failure after a successful reservation leaves the
// transaction PENDING for the sweeper; the numbers stay blocked until
// the reservation window passes.
func (s *ReservationServiceImpl) Checkout(ctx context.Context, slug string, input CheckoutInput) (*CheckoutResult, error) {
	if input.Name == "" {
		return nil, NewValidationError("name is required")
	}
	if input.Whatsapp == "" {
		return nil, NewValidationError("whatsapp is required")
	}
	numbers := utils.DedupeNumbers(input.Numbers)
	if len(numbers) == 0 {
		return nil, NewValidationError("select at least one number")
	}

	campaign, err := s.campaignRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}
	switch campaign.Status {
	case models.CampaignStatusActive:
		// open for checkout
	case models.CampaignStatusPaused, models.CampaignStatusClosed, models.CampaignStatusDrawn:
		return nil, NewValidationError("campaign is not accepting reservations")
	default:
		return nil, ErrNotFound
	}

	for _, n := range numbers {
		if n < 0 || n >= campaign.TotalNumbers {
			return nil, NewValidationError(fmt.Sprintf("number %d is out of range", n))
		}
	}
	if campaign.MaxPerBuyer > 0 && len(numbers) > campaign.MaxPerBuyer {
		return nil, NewValidationError(fmt.Sprintf("at most %d numbers per purchase", campaign.MaxPerBuyer))
	}

	buyer, err := s.buyerRepo.FindOrCreate(ctx, &models.Buyer{
		CampaignID: campaign.ID,
		Name:       input.Name,
		Whatsapp:   input.Whatsapp,
		Email:      input.Email,
	})
	if err != nil {
		slog.Error("Checkout: failed to resolve buyer", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to resolve buyer: %w", err)
	}

	pending, err := s.transactionRepo.CountPendingByBuyer(ctx, campaign.ID, buyer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reservations: %w", err)
	}
	if pending >= MaxPendingPerBuyer {
		return nil, NewValidationError("too many pending reservations, pay or wait for them to expire")
	}

	// The transaction id is minted up front so the reserved pool rows
	// carry it; the document itself is only written after the
	// reservation wins.
	transactionID := primitive.NewObjectID()
	now := time.Now()

	reserved, err := s.ticketRepo.Reserve(ctx, campaign.ID, numbers, buyer.ID, transactionID, now)
	if err != nil {
		slog.Error("Checkout: reserve failed", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to reserve tickets: %w", err)
	}
	if reserved != int64(len(numbers)) {
		// Partial win: some numbers were taken concurrently. Roll back
		// every row this attempt did take and report the conflict.
		if _, releaseErr := s.ticketRepo.Release(ctx, campaign.ID, transactionID); releaseErr != nil {
			slog.Error("Checkout: CRITICAL: failed to roll back partial reservation",
				"error", releaseErr, "campaignId", campaign.ID, "transactionId", transactionID)
		}
		return nil, ErrConflict
	}

	transaction := &models.Transaction{
		ID:         transactionID,
		CampaignID: campaign.ID,
		BuyerID:    buyer.ID,
		Numbers:    numbers,
		Amount:     float64(len(numbers)) * campaign.NumberPrice,
		Status:     models.TransactionStatusPending,
		ExpiresAt:  now.Add(campaign.ReservationWindow()),
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		if _, releaseErr := s.ticketRepo.Release(ctx, campaign.ID, transactionID); releaseErr != nil {
			slog.Error("Checkout: CRITICAL: failed to release tickets after transaction create failure",
				"error", releaseErr, "campaignId", campaign.ID, "transactionId", transactionID)
		}
		slog.Error("Checkout: failed to create transaction", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	pix, err := s.provider.CreatePixPayment(ctx, payment.PixRequest{
		Amount:            transaction.Amount,
		Description:       fmt.Sprintf("Rifa %s - %d número(s)", campaign.Title, len(numbers)),
		ExternalReference: transaction.ID.Hex(),
		BuyerName:         buyer.Name,
		BuyerEmail:        buyer.Email,
	})
	if err != nil {
		// No compensating release here: the reservation stays PENDING
		// and the sweeper reclaims it after the window passes.
		slog.Error("Checkout: payment creation failed, reservation left for sweeper",
			"error", err, "campaignId", campaign.ID, "transactionId", transaction.ID)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if err := s.transactionRepo.SetPaymentArtifacts(ctx, transaction.ID, pix.ID, pix.QRCode, pix.QRCodeCopy); err != nil {
		slog.Error("Checkout: failed to store payment artifacts", "error", err, "transactionId", transaction.ID)
	}
	transaction.PaymentID = pix.ID
	transaction.QRCode = pix.QRCode
	transaction.QRCodeCopy = pix.QRCodeCopy

	go s.notifier.SendReservationCreated(context.Background(), campaign, buyer, transaction)

	slog.Info("Checkout completed", "campaignId", campaign.ID, "transactionId", transaction.ID,
		"numbers", len(numbers), "amount", transaction.Amount)

	return &CheckoutResult{
		TransactionID: transaction.ID.Hex(),
		Amount:        transaction.Amount,
		QRCode:        pix.QRCode,
		QRCodeCopy:    pix.QRCodeCopy,
		ExpiresAt:     transaction.ExpiresAt,
	}, nil
}
