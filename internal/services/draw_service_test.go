package services

import (
	"context"
	"errors"
	"testing"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newDrawService(f *fixture) *DrawServiceImpl {
	return NewDrawService(f.campaignRepo, f.ticketRepo, f.buyerRepo, f.prizeRepo, f.drawAuditRepo, nopNotifier{})
}

// payNumbers runs checkout plus confirmation so the given numbers are
// PAID and eligible for a draw.
func payNumbers(t *testing.T, f *fixture, numbers ...int) {
	t.Helper()
	provider := payment.NewMockProvider()
	transaction := checkout(t, f, provider, numbers...)
	svc := newPaymentService(f, provider)
	if err := svc.ConfirmManual(context.Background(), f.ownerID, transaction.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
}

func TestDrawPrize(t *testing.T) {
	ctx := context.Background()

	t.Run("selects a winner among paid tickets", func(t *testing.T) {
		f := newFixture(100)
		payNumbers(t, f, 3, 7, 12)
		svc := newDrawService(f)

		prize, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID)
		if err != nil {
			t.Fatalf("DrawPrize() error = %v", err)
		}
		if prize.WinnerNumber == nil {
			t.Fatal("prize has no winning number")
		}
		switch *prize.WinnerNumber {
		case 3, 7, 12:
			// a paid number won
		default:
			t.Errorf("winning number = %d, not among paid tickets", *prize.WinnerNumber)
		}
		if prize.WinnerID.IsZero() {
			t.Error("prize has no winner id")
		}
		if prize.WinnerName == "" {
			t.Error("prize has no winner name")
		}
	})

	t.Run("audit row matches the committed winner", func(t *testing.T) {
		f := newFixture(100)
		payNumbers(t, f, 40, 41, 42, 43)
		svc := newDrawService(f)

		prize, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID)
		if err != nil {
			t.Fatalf("DrawPrize() error = %v", err)
		}

		audits, _ := f.drawAuditRepo.FindByCampaign(ctx, f.campaign.ID)
		if len(audits) != 1 {
			t.Fatalf("audits = %d, want 1", len(audits))
		}
		audit := audits[0]
		if audit.EligibleCount != 4 {
			t.Errorf("EligibleCount = %d, want 4", audit.EligibleCount)
		}
		if got := int(audit.RandomValue % uint32(audit.EligibleCount)); got != audit.SelectedIndex {
			t.Errorf("SelectedIndex = %d, inconsistent with RandomValue %d", audit.SelectedIndex, audit.RandomValue)
		}
		if audit.WinningNumber != *prize.WinnerNumber {
			t.Errorf("audit WinningNumber = %d, prize says %d", audit.WinningNumber, *prize.WinnerNumber)
		}
		if audit.BuyerID != prize.WinnerID {
			t.Error("audit buyer does not match prize winner")
		}
		if audit.DrawnBy != f.ownerID {
			t.Error("audit DrawnBy does not match drawing organizer")
		}
	})

	t.Run("no paid tickets means no draw", func(t *testing.T) {
		f := newFixture(100)
		svc := newDrawService(f)

		_, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID)
		if !errors.Is(err, ErrNoEligibleTickets) {
			t.Errorf("DrawPrize() error = %v, want ErrNoEligibleTickets", err)
		}
		// A failed draw must not touch the prize.
		prize, _ := f.prizeRepo.FindByID(ctx, f.prize.ID)
		if prize.Drawn() {
			t.Error("prize was mutated by a failed draw")
		}
	})

	t.Run("reserved tickets are not eligible", func(t *testing.T) {
		f := newFixture(100)
		payNumbers(t, f, 5)
		reserved := validCheckout(20, 21)
		reserved.Whatsapp = "+5511777770000"
		if _, err := newReservationService(f, payment.NewMockProvider()).Checkout(ctx, f.campaign.Slug, reserved); err != nil {
			t.Fatalf("reserve failed: %v", err)
		}
		svc := newDrawService(f)

		prize, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID)
		if err != nil {
			t.Fatalf("DrawPrize() error = %v", err)
		}
		if *prize.WinnerNumber != 5 {
			t.Errorf("winning number = %d, want 5 (the only paid ticket)", *prize.WinnerNumber)
		}
	})

	t.Run("drawn prize cannot be redrawn", func(t *testing.T) {
		f := newFixture(100)
		payNumbers(t, f, 1)
		svc := newDrawService(f)

		if _, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID); err != nil {
			t.Fatalf("first DrawPrize() error = %v", err)
		}
		if _, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID); !errors.Is(err, ErrAlreadyDrawn) {
			t.Errorf("second DrawPrize() error = %v, want ErrAlreadyDrawn", err)
		}
	})

	t.Run("final draw closes the campaign", func(t *testing.T) {
		f := newFixture(100)
		payNumbers(t, f, 2)
		svc := newDrawService(f)

		if _, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID); err != nil {
			t.Fatalf("DrawPrize() error = %v", err)
		}
		campaign, _ := f.campaignRepo.FindByID(ctx, f.campaign.ID)
		if campaign.Status != models.CampaignStatusDrawn {
			t.Errorf("campaign status = %s, want DRAWN after final prize", campaign.Status)
		}
	})

	t.Run("campaign stays open while prizes remain", func(t *testing.T) {
		f := newFixture(100)
		second := &models.Prize{CampaignID: f.campaign.ID, Position: 2, Name: "Segundo Prêmio"}
		_ = f.prizeRepo.CreateMany(ctx, []*models.Prize{second})
		payNumbers(t, f, 2)
		svc := newDrawService(f)

		if _, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID); err != nil {
			t.Fatalf("DrawPrize() error = %v", err)
		}
		campaign, _ := f.campaignRepo.FindByID(ctx, f.campaign.ID)
		if campaign.Status != models.CampaignStatusActive {
			t.Errorf("campaign status = %s, want ACTIVE with an undrawn prize left", campaign.Status)
		}
	})

	t.Run("foreign owner and foreign prize read as not found", func(t *testing.T) {
		f := newFixture(100)
		payNumbers(t, f, 1)
		svc := newDrawService(f)

		if _, err := svc.DrawPrize(ctx, primitive.NewObjectID(), f.campaign.ID, f.prize.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("DrawPrize() with foreign owner error = %v, want ErrNotFound", err)
		}

		other := newFixture(10)
		if _, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, other.prize.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("DrawPrize() with foreign prize error = %v, want ErrNotFound", err)
		}
	})
}

func TestListAudits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(100)
	payNumbers(t, f, 1)
	svc := newDrawService(f)

	if _, err := svc.DrawPrize(ctx, f.ownerID, f.campaign.ID, f.prize.ID); err != nil {
		t.Fatalf("DrawPrize() error = %v", err)
	}

	audits, err := svc.ListAudits(ctx, f.ownerID, f.campaign.ID)
	if err != nil {
		t.Fatalf("ListAudits() error = %v", err)
	}
	if len(audits) != 1 {
		t.Errorf("audits = %d, want 1", len(audits))
	}

	if _, err := svc.ListAudits(ctx, primitive.NewObjectID(), f.campaign.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("ListAudits() with foreign owner error = %v, want ErrNotFound", err)
	}
}
