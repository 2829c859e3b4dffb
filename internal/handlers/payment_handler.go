package handlers

import (
	"net/http"

	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment confirmation and cancellation requests
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Confirm handles POST /transactions/:id/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.ConfirmManual(c, ownerID, transactionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "PAID"})
}

// Cancel handles POST /transactions/:id/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Cancel(c, ownerID, transactionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "CANCELLED"})
}

type webhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Webhook handles POST /payments/webhook. The provider retries on
// non-2xx responses, so anything that is not our fault answers 200.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if req.Type != "payment" || req.Data.ID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.paymentService.HandleWebhook(c, req.Data.ID); err != nil {
		// Provider outages are worth a retry from their side.
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
