package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl selects winners among PAID tickets using a
// cryptographically secure random source. The audit record is written
// before the winner is committed, so every committed winner has a
// matching audit row.
type DrawServiceImpl struct {
	campaignRepo  repositories.CampaignRepository
	ticketRepo    repositories.TicketRepository
	buyerRepo     repositories.BuyerRepository
	prizeRepo     repositories.PrizeRepository
	drawAuditRepo repositories.DrawAuditRepository
	notifier      NotificationService
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	campaignRepo repositories.CampaignRepository,
	ticketRepo repositories.TicketRepository,
	buyerRepo repositories.BuyerRepository,
	prizeRepo repositories.PrizeRepository,
	drawAuditRepo repositories.DrawAuditRepository,
	notifier NotificationService,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		campaignRepo:  campaignRepo,
		ticketRepo:    ticketRepo,
		buyerRepo:     buyerRepo,
		prizeRepo:     prizeRepo,
		drawAuditRepo: drawAuditRepo,
		notifier:      notifier,
	}
}

// DrawPrize selects a winner for one not-yet-drawn prize
func (s *DrawServiceImpl) DrawPrize(ctx context.Context, ownerID, campaignID, prizeID primitive.ObjectID) (*models.Prize, error) {
	campaign, err := s.getOwnedCampaign(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	prize, err := s.prizeRepo.FindByID(ctx, prizeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve prize: %w", err)
	}
	if prize.CampaignID != campaign.ID {
		return nil, ErrNotFound
	}
	if prize.Drawn() {
		return nil, ErrAlreadyDrawn
	}

	// The eligible pool is the PAID tickets ordered by number, so the
	// selected index maps to a deterministic, auditable position.
	eligible, err := s.ticketRepo.FindPaidByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid tickets: %w", err)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleTickets
	}

	randomValue, err := secureRandomUint32()
	if err != nil {
		return nil, fmt.Errorf("failed to read random source: %w", err)
	}
	index := int(randomValue % uint32(len(eligible)))
	winning := eligible[index]

	winner, err := s.buyerRepo.FindByID(ctx, winning.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve winning buyer: %w", err)
	}

	now := time.Now()
	audit := &models.DrawAudit{
		CampaignID:    campaign.ID,
		PrizeID:       prize.ID,
		EligibleCount: len(eligible),
		RandomValue:   randomValue,
		SelectedIndex: index,
		WinningNumber: winning.Number,
		BuyerID:       winner.ID,
		DrawnBy:       ownerID,
		CreatedAt:     now,
	}
	// Audit first. A crash after this point leaves an audit row without
	// a committed winner, which is harmless and retryable.
	if err := s.drawAuditRepo.Create(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to record draw audit: %w", err)
	}

	ok, err := s.prizeRepo.SetWinner(ctx, prize.ID, winner.ID, winning.Number, winner.Name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to record winner: %w", err)
	}
	if !ok {
		// A concurrent draw committed first.
		return nil, ErrAlreadyDrawn
	}

	slog.Info("Prize drawn",
		"campaignId", campaign.ID,
		"prizeId", prize.ID,
		"winningNumber", winning.Number,
		"eligibleCount", len(eligible))

	prize.WinnerID = winner.ID
	prize.WinnerNumber = &winning.Number
	prize.WinnerName = winner.Name
	prize.DrawnAt = now

	undrawn, err := s.prizeRepo.CountUndrawn(ctx, campaign.ID)
	if err != nil {
		slog.Error("Draw: failed to count undrawn prizes", "error", err, "campaignId", campaign.ID)
	} else if undrawn == 0 {
		if _, err := s.campaignRepo.MarkDrawn(ctx, campaign.ID); err != nil {
			slog.Error("Draw: failed to close campaign after final draw", "error", err, "campaignId", campaign.ID)
		}
	}

	go s.notifier.SendWinnerAnnouncement(context.Background(), campaign, winner, prize, winning.Number)

	return prize, nil
}

// ListAudits returns the campaign's draw audit trail
func (s *DrawServiceImpl) ListAudits(ctx context.Context, ownerID, campaignID primitive.ObjectID) ([]*models.DrawAudit, error) {
	campaign, err := s.getOwnedCampaign(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}
	audits, err := s.drawAuditRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw audits: %w", err)
	}
	return audits, nil
}

func (s *DrawServiceImpl) getOwnedCampaign(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}
	if campaign.OwnerID != ownerID || campaign.Status == models.CampaignStatusDeleted {
		return nil, ErrNotFound
	}
	return campaign, nil
}

func secureRandomUint32() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
