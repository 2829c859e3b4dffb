package services

import (
	"context"
	"fmt"
	"time"

	"github.com/WebuildSoft/myrifa-sub001/internal/models"
	"github.com/WebuildSoft/myrifa-sub001/internal/repositories"
	"github.com/WebuildSoft/myrifa-sub001/internal/utils"
	"github.com/WebuildSoft/myrifa-sub001/pkg/whatsapp"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure NotificationServiceImpl implements NotificationService
var _ NotificationService = (*NotificationServiceImpl)(nil)

// NotificationServiceImpl renders buyer-facing WhatsApp messages and
// records every attempt. Sends never fail the triggering operation.
type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	gateway          whatsapp.Gateway
}

// NewNotificationService creates a new NotificationServiceImpl
func NewNotificationService(notificationRepo repositories.NotificationRepository, gateway whatsapp.Gateway) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		gateway:          gateway,
	}
}

// SendReservationCreated notifies the buyer of a new reservation with
// the PIX code and the expiry warning
func (s *NotificationServiceImpl) SendReservationCreated(ctx context.Context, campaign *models.Campaign, buyer *models.Buyer, transaction *models.Transaction) {
	minutes := int(campaign.ReservationWindow() / time.Minute)
	content := fmt.Sprintf(
		"Olá, %s! Sua reserva na rifa \"%s\" foi criada.\nNúmeros: %s\nTotal: %s\nPague via PIX em até %d minutos ou a reserva expira.\nCódigo PIX copia e cola: %s",
		buyer.Name,
		campaign.Title,
		utils.FormatNumbers(transaction.Numbers, campaign.TotalNumbers),
		utils.FormatBRL(transaction.Amount),
		minutes,
		transaction.QRCodeCopy,
	)
	s.send(ctx, campaign, buyer.Whatsapp, models.NotificationTypeReservation, content)
}

// SendPaymentConfirmed notifies the buyer their numbers are secured
func (s *NotificationServiceImpl) SendPaymentConfirmed(ctx context.Context, campaign *models.Campaign, buyer *models.Buyer, transaction *models.Transaction) {
	content := fmt.Sprintf(
		"Pagamento confirmado, %s! Seus números na rifa \"%s\": %s. Boa sorte!",
		buyer.Name,
		campaign.Title,
		utils.FormatNumbers(transaction.Numbers, campaign.TotalNumbers),
	)
	s.send(ctx, campaign, buyer.Whatsapp, models.NotificationTypePayment, content)
}

// SendWinnerAnnouncement notifies the winning buyer
func (s *NotificationServiceImpl) SendWinnerAnnouncement(ctx context.Context, campaign *models.Campaign, buyer *models.Buyer, prize *models.Prize, winningNumber int) {
	content := fmt.Sprintf(
		"Parabéns, %s! O número %s foi sorteado e você ganhou \"%s\" na rifa \"%s\"!",
		buyer.Name,
		utils.FormatNumbers([]int{winningNumber}, campaign.TotalNumbers),
		prize.Name,
		campaign.Title,
	)
	s.send(ctx, campaign, buyer.Whatsapp, models.NotificationTypeWinner, content)
}

func (s *NotificationServiceImpl) send(ctx context.Context, campaign *models.Campaign, phone, notificationType, content string) {
	notification := &models.Notification{
		CampaignID: campaign.ID,
		Whatsapp:   phone,
		Type:       notificationType,
		Content:    content,
	}

	messageID, err := s.gateway.SendMessage(phone, content)
	if err != nil {
		notification.Status = models.NotificationStatusFailed
		notification.Error = err.Error()
		slog.Error("Notification send failed", "error", err, "campaignId", campaign.ID, "type", notificationType)
	} else {
		notification.Status = models.NotificationStatusSent
		notification.MessageID = messageID
		notification.SentAt = time.Now()
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to record notification", "error", err, "campaignId", campaign.ID, "type", notificationType)
	}
}
