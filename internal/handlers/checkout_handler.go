package handlers

import (
	"net/http"

	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles buyer-facing reservation requests
type CheckoutHandler struct {
	reservationService services.ReservationService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(reservationService services.ReservationService) *CheckoutHandler {
	return &CheckoutHandler{reservationService: reservationService}
}

type checkoutRequest struct {
	Numbers  []int  `json:"numbers" binding:"required,min=1"`
	Name     string `json:"name" binding:"required"`
	Whatsapp string `json:"whatsapp" binding:"required"`
	Email    string `json:"email"`
}

// Checkout handles POST /campaigns/slug/:slug/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reservationService.Checkout(c, c.Param("slug"), services.CheckoutInput{
		Numbers:  req.Numbers,
		Name:     req.Name,
		Whatsapp: req.Whatsapp,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
