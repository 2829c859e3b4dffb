package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPaymentService(f *fixture, provider payment.Provider) *PaymentServiceImpl {
	return NewPaymentService(f.campaignRepo, f.ticketRepo, f.buyerRepo, f.transactionRepo, provider, nopNotifier{})
}

// checkout runs a full checkout against the fixture and returns the
// created transaction.
func checkout(t *testing.T, f *fixture, provider payment.Provider, numbers ...int) *models.Transaction {
	t.Helper()
	svc := newReservationService(f, provider)
	result, err := svc.Checkout(context.Background(), f.campaign.Slug, validCheckout(numbers...))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	id, _ := primitive.ObjectIDFromHex(result.TransactionID)
	transaction, err := f.transactionRepo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("transaction lookup failed: %v", err)
	}
	return transaction
}

func TestConfirmManual(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes tickets and credits the campaign", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 3, 7)
		svc := newPaymentService(f, provider)

		if err := svc.ConfirmManual(ctx, f.ownerID, transaction.ID); err != nil {
			t.Fatalf("ConfirmManual() error = %v", err)
		}

		updated, _ := f.transactionRepo.FindByID(ctx, transaction.ID)
		if updated.Status != models.TransactionStatusPaid {
			t.Errorf("transaction status = %s, want PAID", updated.Status)
		}
		for _, n := range []int{3, 7} {
			if got := f.ticketRepo.byNumber(f.campaign.ID, n).Status; got != models.TicketStatusPaid {
				t.Errorf("ticket %d status = %s, want PAID", n, got)
			}
		}
		campaign, _ := f.campaignRepo.FindByID(ctx, f.campaign.ID)
		if campaign.TotalRaised != 20.0 {
			t.Errorf("totalRaised = %v, want 20.0", campaign.TotalRaised)
		}
	})

	t.Run("second confirm is rejected and credits nothing twice", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 1)
		svc := newPaymentService(f, provider)

		if err := svc.ConfirmManual(ctx, f.ownerID, transaction.ID); err != nil {
			t.Fatalf("first ConfirmManual() error = %v", err)
		}
		if err := svc.ConfirmManual(ctx, f.ownerID, transaction.ID); !errors.Is(err, ErrAlreadyFinal) {
			t.Fatalf("second ConfirmManual() error = %v, want ErrAlreadyFinal", err)
		}

		campaign, _ := f.campaignRepo.FindByID(ctx, f.campaign.ID)
		if campaign.TotalRaised != 10.0 {
			t.Errorf("totalRaised = %v, want 10.0 after duplicate confirm", campaign.TotalRaised)
		}
	})

	t.Run("cancelled transaction cannot be confirmed", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 2)
		svc := newPaymentService(f, provider)

		if err := svc.Cancel(ctx, f.ownerID, transaction.ID); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if err := svc.ConfirmManual(ctx, f.ownerID, transaction.ID); !errors.Is(err, ErrAlreadyFinal) {
			t.Errorf("ConfirmManual() error = %v, want ErrAlreadyFinal", err)
		}
	})

	t.Run("foreign owner reads as not found", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 2)
		svc := newPaymentService(f, provider)

		err := svc.ConfirmManual(ctx, primitive.NewObjectID(), transaction.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("ConfirmManual() error = %v, want ErrNotFound", err)
		}
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the reserved numbers", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 5, 6)
		svc := newPaymentService(f, provider)

		if err := svc.Cancel(ctx, f.ownerID, transaction.ID); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}

		updated, _ := f.transactionRepo.FindByID(ctx, transaction.ID)
		if updated.Status != models.TransactionStatusCancelled {
			t.Errorf("transaction status = %s, want CANCELLED", updated.Status)
		}
		for _, n := range []int{5, 6} {
			ticket := f.ticketRepo.byNumber(f.campaign.ID, n)
			if ticket.Status != models.TicketStatusAvailable {
				t.Errorf("ticket %d status = %s, want AVAILABLE", n, ticket.Status)
			}
			if !ticket.TransactionID.IsZero() {
				t.Errorf("ticket %d still tagged with transaction", n)
			}
		}
	})

	t.Run("paid transaction cannot be cancelled", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 9)
		svc := newPaymentService(f, provider)

		if err := svc.ConfirmManual(ctx, f.ownerID, transaction.ID); err != nil {
			t.Fatalf("ConfirmManual() error = %v", err)
		}
		if err := svc.Cancel(ctx, f.ownerID, transaction.ID); !errors.Is(err, ErrAlreadyFinal) {
			t.Fatalf("Cancel() error = %v, want ErrAlreadyFinal", err)
		}
		// Paid tickets stay paid.
		if got := f.ticketRepo.byNumber(f.campaign.ID, 9).Status; got != models.TicketStatusPaid {
			t.Errorf("ticket 9 status = %s, want PAID", got)
		}
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("approved payment confirms the transaction", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 11)
		svc := newPaymentService(f, provider)

		if err := svc.HandleWebhook(ctx, transaction.PaymentID); err != nil {
			t.Fatalf("HandleWebhook() error = %v", err)
		}

		updated, _ := f.transactionRepo.FindByID(ctx, transaction.ID)
		if updated.Status != models.TransactionStatusPaid {
			t.Errorf("transaction status = %s, want PAID", updated.Status)
		}
	})

	t.Run("duplicate delivery is a no-op", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 11)
		svc := newPaymentService(f, provider)

		if err := svc.HandleWebhook(ctx, transaction.PaymentID); err != nil {
			t.Fatalf("first HandleWebhook() error = %v", err)
		}
		if err := svc.HandleWebhook(ctx, transaction.PaymentID); err != nil {
			t.Fatalf("second HandleWebhook() error = %v, want nil", err)
		}

		campaign, _ := f.campaignRepo.FindByID(ctx, f.campaign.ID)
		if campaign.TotalRaised != 10.0 {
			t.Errorf("totalRaised = %v, want 10.0 after duplicate webhook", campaign.TotalRaised)
		}
	})

	t.Run("webhook after sweep fails cleanly", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		transaction := checkout(t, f, provider, 12)
		svc := newPaymentService(f, provider)

		// Force-expire and sweep before the webhook lands.
		f.transactionRepo.transactions[transaction.ID].ExpiresAt = time.Now().Add(-time.Minute)
		sweeper := NewSweeperService(f.ticketRepo, f.transactionRepo)
		if _, err := sweeper.SweepExpired(ctx); err != nil {
			t.Fatalf("SweepExpired() error = %v", err)
		}

		if err := svc.HandleWebhook(ctx, transaction.PaymentID); err != nil {
			t.Fatalf("HandleWebhook() error = %v, want nil on cancelled transaction", err)
		}
		updated, _ := f.transactionRepo.FindByID(ctx, transaction.ID)
		if updated.Status != models.TransactionStatusCancelled {
			t.Errorf("transaction status = %s, want CANCELLED to stand", updated.Status)
		}
		if got := f.ticketRepo.byNumber(f.campaign.ID, 12).Status; got != models.TicketStatusAvailable {
			t.Errorf("ticket 12 status = %s, want AVAILABLE", got)
		}
	})

	t.Run("payment for a foreign reference is acknowledged", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		svc := newPaymentService(f, provider)

		// Approved payments whose reference resolves to nothing on our
		// side must not error, or the provider retries them forever.
		orphan, err := provider.CreatePixPayment(ctx, payment.PixRequest{
			ExternalReference: primitive.NewObjectID().Hex(),
		})
		if err != nil {
			t.Fatalf("CreatePixPayment() error = %v", err)
		}
		if err := svc.HandleWebhook(ctx, orphan.ID); err != nil {
			t.Errorf("HandleWebhook() error = %v, want nil for unknown transaction", err)
		}

		garbled, err := provider.CreatePixPayment(ctx, payment.PixRequest{
			ExternalReference: "not-an-object-id",
		})
		if err != nil {
			t.Fatalf("CreatePixPayment() error = %v", err)
		}
		if err := svc.HandleWebhook(ctx, garbled.ID); err != nil {
			t.Errorf("HandleWebhook() error = %v, want nil for unusable reference", err)
		}
	})

	t.Run("unknown provider payment errors", func(t *testing.T) {
		f := newFixture(100)
		provider := payment.NewMockProvider()
		svc := newPaymentService(f, provider)

		if err := svc.HandleWebhook(ctx, "MOCK-PIX-unknown"); !errors.Is(err, ErrPaymentProvider) {
			t.Errorf("HandleWebhook() error = %v, want ErrPaymentProvider", err)
		}
	})
}
