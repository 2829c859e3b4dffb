package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"github.com/WebuildSoft/myrifa-sub001/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// MaxCampaignNumbers caps the ticket pool size of a single campaign
const MaxCampaignNumbers = 100000

// Compile-time check to ensure CampaignServiceImpl implements CampaignService
var _ CampaignService = (*CampaignServiceImpl)(nil)

// CampaignServiceImpl handles campaign lifecycle business logic
type CampaignServiceImpl struct {
	campaignRepo    repositories.CampaignRepository
	ticketRepo      repositories.TicketRepository
	prizeRepo       repositories.PrizeRepository
	transactionRepo repositories.TransactionRepository
}

// NewCampaignService creates a new CampaignServiceImpl
func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	ticketRepo repositories.TicketRepository,
	prizeRepo repositories.PrizeRepository,
	transactionRepo repositories.TransactionRepository,
) *CampaignServiceImpl {
	return &CampaignServiceImpl{
		campaignRepo:    campaignRepo,
		ticketRepo:      ticketRepo,
		prizeRepo:       prizeRepo,
		transactionRepo: transactionRepo,
	}
}

// Create creates a DRAFT campaign with its prizes
func (s *CampaignServiceImpl) Create(ctx context.Context, ownerID primitive.ObjectID, input CreateCampaignInput) (*models.Campaign, error) {
	if input.Title == "" {
		return nil, NewValidationError("title is required")
	}
	if input.TotalNumbers < 2 || input.TotalNumbers > MaxCampaignNumbers {
		return nil, NewValidationError(fmt.Sprintf("totalNumbers must be between 2 and %d", MaxCampaignNumbers))
	}
	if input.NumberPrice <= 0 {
		return nil, NewValidationError("numberPrice must be positive")
	}
	if input.MaxPerBuyer < 0 {
		return nil, NewValidationError("maxPerBuyer cannot be negative")
	}
	if len(input.Prizes) == 0 {
		return nil, NewValidationError("at least one prize is required")
	}
	for _, p := range input.Prizes {
		if p.Name == "" {
			return nil, NewValidationError("prize name is required")
		}
	}

	slug, err := utils.Slugify(input.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	campaign := &models.Campaign{
		Slug:               slug,
		Title:              input.Title,
		Description:        input.Description,
		OwnerID:            ownerID,
		TotalNumbers:       input.TotalNumbers,
		NumberPrice:        input.NumberPrice,
		MaxPerBuyer:        input.MaxPerBuyer,
		ReservationMinutes: input.ReservationMinutes,
		Status:             models.CampaignStatusDraft,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		slog.Error("Create: failed to create campaign", "error", err, "ownerId", ownerID)
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	prizes := make([]*models.Prize, 0, len(input.Prizes))
	for i, p := range input.Prizes {
		prizes = append(prizes, &models.Prize{
			CampaignID:  campaign.ID,
			Position:    i + 1,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	if err := s.prizeRepo.CreateMany(ctx, prizes); err != nil {
		slog.Error("Create: failed to create prizes", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to create prizes: %w", err)
	}

	slog.Info("Campaign created", "campaignId", campaign.ID, "slug", campaign.Slug, "totalNumbers", campaign.TotalNumbers)
	return campaign, nil
}

// Activate generates the ticket pool and opens the campaign for
// checkout. The DRAFT-state guard makes activation single-shot under
// concurrent requests; the pool is generated only by the winner.
func (s *CampaignServiceImpl) Activate(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.getOwned(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	ok, err := s.campaignRepo.UpdateStatus(ctx, campaignID,
		[]models.CampaignStatus{models.CampaignStatusDraft}, models.CampaignStatusActive)
	if err != nil {
		slog.Error("Activate: failed to update status", "error", err, "campaignId", campaignID)
		return nil, fmt.Errorf("failed to activate campaign: %w", err)
	}
	if !ok {
		return nil, NewValidationError("campaign is not in draft state")
	}

	tickets := make([]*models.Ticket, 0, campaign.TotalNumbers)
	for n := 0; n < campaign.TotalNumbers; n++ {
		tickets = append(tickets, &models.Ticket{
			CampaignID: campaignID,
			Number:     n,
			Status:     models.TicketStatusAvailable,
		})
	}
	if err := s.ticketRepo.CreateMany(ctx, tickets); err != nil {
		// Put the campaign back in DRAFT so activation can be retried
		// with an empty pool.
		if _, revertErr := s.campaignRepo.UpdateStatus(ctx, campaignID,
			[]models.CampaignStatus{models.CampaignStatusActive}, models.CampaignStatusDraft); revertErr != nil {
			slog.Error("Activate: CRITICAL: failed to revert campaign to draft after ticket generation failure",
				"error", revertErr, "campaignId", campaignID)
		}
		slog.Error("Activate: failed to generate tickets", "error", err, "campaignId", campaignID)
		return nil, fmt.Errorf("failed to generate tickets: %w", err)
	}

	slog.Info("Campaign activated", "campaignId", campaignID, "tickets", campaign.TotalNumbers)
	return s.campaignRepo.FindByID(ctx, campaignID)
}

// Pause suspends checkout on an active campaign
func (s *CampaignServiceImpl) Pause(ctx context.Context, ownerID, campaignID primitive.ObjectID) error {
	return s.transition(ctx, ownerID, campaignID, models.CampaignStatusActive, models.CampaignStatusPaused)
}

// Resume reopens a paused campaign
func (s *CampaignServiceImpl) Resume(ctx context.Context, ownerID, campaignID primitive.ObjectID) error {
	return s.transition(ctx, ownerID, campaignID, models.CampaignStatusPaused, models.CampaignStatusActive)
}

func (s *CampaignServiceImpl) transition(ctx context.Context, ownerID, campaignID primitive.ObjectID, from, to models.CampaignStatus) error {
	if _, err := s.getOwned(ctx, ownerID, campaignID); err != nil {
		return err
	}
	ok, err := s.campaignRepo.UpdateStatus(ctx, campaignID, []models.CampaignStatus{from}, to)
	if err != nil {
		slog.Error("transition: failed to update campaign status", "error", err, "campaignId", campaignID, "to", to)
		return fmt.Errorf("failed to update campaign status: %w", err)
	}
	if !ok {
		return NewValidationError(fmt.Sprintf("campaign is not in %s state", from))
	}
	return nil
}

// GetOwned retrieves a campaign scoped to its owner
func (s *CampaignServiceImpl) GetOwned(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*models.Campaign, error) {
	return s.getOwned(ctx, ownerID, campaignID)
}

func (s *CampaignServiceImpl) getOwned(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}
	// Ownership mismatch reads as not found so existence never leaks.
	if campaign.OwnerID != ownerID || campaign.Status == models.CampaignStatusDeleted {
		return nil, ErrNotFound
	}
	return campaign, nil
}

// ListOwned retrieves all campaigns of an organizer
func (s *CampaignServiceImpl) ListOwned(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Campaign, error) {
	campaigns, err := s.campaignRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// GetPublicPage builds the public campaign page: campaign data, prizes
// and the per-number availability grid
func (s *CampaignServiceImpl) GetPublicPage(ctx context.Context, slug string) (*CampaignPage, error) {
	campaign, err := s.campaignRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}
	switch campaign.Status {
	case models.CampaignStatusActive, models.CampaignStatusPaused,
		models.CampaignStatusClosed, models.CampaignStatusDrawn:
		// publicly visible
	default:
		return nil, ErrNotFound
	}

	prizes, err := s.prizeRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve prizes: %w", err)
	}

	tickets, err := s.ticketRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tickets: %w", err)
	}
	grid := make([]models.TicketStatus, campaign.TotalNumbers)
	for i := range grid {
		grid[i] = models.TicketStatusAvailable
	}
	for _, ticket := range tickets {
		if ticket.Number >= 0 && ticket.Number < len(grid) {
			grid[ticket.Number] = ticket.Status
		}
	}

	return &CampaignPage{Campaign: campaign, Prizes: prizes, Numbers: grid}, nil
}

// GetStats builds the organizer dashboard counters for one campaign
func (s *CampaignServiceImpl) GetStats(ctx context.Context, ownerID, campaignID primitive.ObjectID) (*CampaignStats, error) {
	campaign, err := s.getOwned(ctx, ownerID, campaignID)
	if err != nil {
		return nil, err
	}

	stats := &CampaignStats{TotalRaised: campaign.TotalRaised}
	if stats.AvailableTickets, err = s.ticketRepo.CountByStatus(ctx, campaignID, models.TicketStatusAvailable); err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	if stats.ReservedTickets, err = s.ticketRepo.CountByStatus(ctx, campaignID, models.TicketStatusReserved); err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	if stats.PaidTickets, err = s.ticketRepo.CountByStatus(ctx, campaignID, models.TicketStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	if stats.UndrawnPrizes, err = s.prizeRepo.CountUndrawn(ctx, campaignID); err != nil {
		return nil, fmt.Errorf("failed to count prizes: %w", err)
	}
	return stats, nil
}

// ListTransactions retrieves a campaign's transactions for its owner
func (s *CampaignServiceImpl) ListTransactions(ctx context.Context, ownerID, campaignID primitive.ObjectID, page, limit int) ([]*models.Transaction, error) {
	if _, err := s.getOwned(ctx, ownerID, campaignID); err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindByCampaign(ctx, campaignID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
