package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"github.com/WebuildSoft/myrifa-sub001/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PaymentServiceImpl implements PaymentService
var _ PaymentService = (*PaymentServiceImpl)(nil)

// PaymentServiceImpl handles payment confirmation and cancellation.
// Both confirmation paths (manual and webhook) converge on the same
// conditional PENDING→PAID transition, which is what makes duplicate
// and out-of-order deliveries safe.
type PaymentServiceImpl struct {
	campaignRepo    repositories.CampaignRepository
	ticketRepo      repositories.TicketRepository
	buyerRepo       repositories.BuyerRepository
	transactionRepo repositories.TransactionRepository
	provider        payment.Provider
	notifier        NotificationService
}

// NewPaymentService creates a new PaymentServiceImpl
func NewPaymentService(
	campaignRepo repositories.CampaignRepository,
	ticketRepo repositories.TicketRepository,
	buyerRepo repositories.BuyerRepository,
	transactionRepo repositories.TransactionRepository,
	provider payment.Provider,
	notifier NotificationService,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		campaignRepo:    campaignRepo,
		ticketRepo:      ticketRepo,
		buyerRepo:       buyerRepo,
		transactionRepo: transactionRepo,
		provider:        provider,
		notifier:        notifier,
	}
}

// ConfirmManual is the organizer-triggered confirmation path
func (s *PaymentServiceImpl) ConfirmManual(ctx context.Context, ownerID, transactionID primitive.ObjectID) error {
	transaction, campaign, err := s.getOwnedTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return err
	}
	return s.confirm(ctx, campaign, transaction)
}

// HandleWebhook resolves the provider payment and confirms the
// referenced transaction when the payment is approved. Duplicate or
// out-of-order deliveries resolve as benign no-ops.
func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, providerPaymentID string) error {
	info, err := s.provider.GetPayment(ctx, providerPaymentID)
	if err != nil {
		slog.Error("Webhook: failed to fetch payment from provider", "error", err, "paymentId", providerPaymentID)
		return fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}
	if info.Status != payment.StatusApproved {
		slog.Info("Webhook: ignoring non-approved payment", "paymentId", providerPaymentID, "status", info.Status)
		return nil
	}

	transactionID, err := primitive.ObjectIDFromHex(info.ExternalReference)
	if err != nil {
		// Not one of ours. Acknowledge it or the provider retries forever.
		slog.Warn("Webhook: payment has no usable external reference", "paymentId", providerPaymentID, "externalReference", info.ExternalReference)
		return nil
	}

	transaction, err := s.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Not one of ours. Acknowledge it or the provider retries forever.
			slog.Warn("Webhook: no transaction for external reference", "paymentId", providerPaymentID, "transactionId", transactionID)
			return nil
		}
		return fmt.Errorf("failed to retrieve transaction: %w", err)
	}
	campaign, err := s.campaignRepo.FindByID(ctx, transaction.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to retrieve campaign: %w", err)
	}

	if err := s.confirm(ctx, campaign, transaction); err != nil {
		if errors.Is(err, ErrAlreadyFinal) {
			// Duplicate delivery, or the sweeper got there first.
			slog.Info("Webhook: transaction already finalized", "transactionId", transactionID, "status", transaction.Status)
			return nil
		}
		return err
	}
	return nil
}

// confirm applies the PENDING→PAID transition: transaction status,
// ticket pool promotion and totalRaised credit. The transaction-status
// update goes first and is the gate; losing it means some other path
// already finalized this transaction.
func (s *PaymentServiceImpl) confirm(ctx context.Context, campaign *models.Campaign, transaction *models.Transaction) error {
	now := time.Now()

	ok, err := s.transactionRepo.MarkPaid(ctx, transaction.ID, now)
	if err != nil {
		slog.Error("Confirm: failed to mark transaction paid", "error", err, "transactionId", transaction.ID)
		return fmt.Errorf("failed to mark transaction paid: %w", err)
	}
	if !ok {
		return ErrAlreadyFinal
	}

	promoted, err := s.ticketRepo.MarkPaid(ctx, campaign.ID, transaction.ID, now)
	if err != nil {
		slog.Error("Confirm: CRITICAL: transaction paid but ticket promotion failed",
			"error", err, "transactionId", transaction.ID, "campaignId", campaign.ID)
		return fmt.Errorf("failed to mark tickets paid: %w", err)
	}
	if promoted != int64(len(transaction.Numbers)) {
		slog.Error("Confirm: CRITICAL: promoted ticket count mismatch",
			"transactionId", transaction.ID, "expected", len(transaction.Numbers), "promoted", promoted)
	}

	if err := s.campaignRepo.IncrementTotalRaised(ctx, campaign.ID, transaction.Amount); err != nil {
		slog.Error("Confirm: CRITICAL: failed to credit campaign total",
			"error", err, "campaignId", campaign.ID, "amount", transaction.Amount)
		return fmt.Errorf("failed to credit campaign total: %w", err)
	}

	slog.Info("Payment confirmed", "transactionId", transaction.ID, "campaignId", campaign.ID, "amount", transaction.Amount)

	if buyer, err := s.buyerRepo.FindByID(ctx, transaction.BuyerID); err == nil {
		confirmed := *transaction
		confirmed.Status = models.TransactionStatusPaid
		confirmed.PaidAt = now
		go s.notifier.SendPaymentConfirmed(context.Background(), campaign, buyer, &confirmed)
	} else {
		slog.Error("Confirm: failed to load buyer for notification", "error", err, "buyerId", transaction.BuyerID)
	}

	return nil
}

// Cancel is the organizer-triggered equivalent of expiry for a single
// pending transaction
func (s *PaymentServiceImpl) Cancel(ctx context.Context, ownerID, transactionID primitive.ObjectID) error {
	transaction, campaign, err := s.getOwnedTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return err
	}

	ok, err := s.transactionRepo.MarkCancelled(ctx, transaction.ID, time.Now())
	if err != nil {
		slog.Error("Cancel: failed to cancel transaction", "error", err, "transactionId", transaction.ID)
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}
	if !ok {
		// Already PAID or already CANCELLED; paid transactions cannot
		// be cancelled through this path.
		return ErrAlreadyFinal
	}

	freed, err := s.ticketRepo.Release(ctx, campaign.ID, transaction.ID)
	if err != nil {
		slog.Error("Cancel: CRITICAL: transaction cancelled but ticket release failed",
			"error", err, "transactionId", transaction.ID, "campaignId", campaign.ID)
		return fmt.Errorf("failed to release tickets: %w", err)
	}

	slog.Info("Transaction cancelled", "transactionId", transaction.ID, "campaignId", campaign.ID, "freedNumbers", freed)
	return nil
}

func (s *PaymentServiceImpl) getOwnedTransaction(ctx context.Context, ownerID, transactionID primitive.ObjectID) (*models.Transaction, *models.Campaign, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}
	campaign, err := s.campaignRepo.FindByID(ctx, transaction.CampaignID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}
	// Ownership mismatch reads as not found so existence never leaks.
	if campaign.OwnerID != ownerID {
		return nil, nil, ErrNotFound
	}
	return transaction, campaign, nil
}
