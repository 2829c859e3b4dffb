package services

import (
	"context"
	"fmt"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure SweeperServiceImpl implements SweeperService
var _ SweeperService = (*SweeperServiceImpl)(nil)

// SweeperServiceImpl reclaims expired pending reservations. Each
// transaction is an independent unit of work, so one failure never
// blocks the rest of the batch.
type SweeperServiceImpl struct {
	ticketRepo      repositories.TicketRepository
	transactionRepo repositories.TransactionRepository
}

// NewSweeperService creates a new SweeperServiceImpl
func NewSweeperService(
	ticketRepo repositories.TicketRepository,
	transactionRepo repositories.TransactionRepository,
) *SweeperServiceImpl {
	return &SweeperServiceImpl{
		ticketRepo:      ticketRepo,
		transactionRepo: transactionRepo,
	}
}

// SweepExpired cancels every pending transaction whose reservation
// window has elapsed and returns the matching tickets to the pool
func (s *SweeperServiceImpl) SweepExpired(ctx context.Context) (*SweepResult, error) {
	now := time.Now()

	expired, err := s.transactionRepo.FindExpiredPending(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired transactions: %w", err)
	}

	result := &SweepResult{}
	for _, transaction := range expired {
		ok, err := s.transactionRepo.MarkCancelled(ctx, transaction.ID, now)
		if err != nil {
			slog.Error("Sweeper: failed to cancel transaction", "error", err, "transactionId", transaction.ID)
			continue
		}
		if !ok {
			// A payment or manual action landed between the listing
			// and this update. Leave it alone.
			continue
		}

		freed, err := s.ticketRepo.Release(ctx, transaction.CampaignID, transaction.ID)
		if err != nil {
			slog.Error("Sweeper: CRITICAL: transaction cancelled but ticket release failed",
				"error", err, "transactionId", transaction.ID, "campaignId", transaction.CampaignID)
			continue
		}

		result.CancelledTransactions++
		result.FreedNumbers += int(freed)
	}

	if result.CancelledTransactions > 0 {
		slog.Info("Sweep completed",
			"cancelledTransactions", result.CancelledTransactions,
			"freedNumbers", result.FreedNumbers)
	}
	return result, nil
}
