package handlers

import (
	"net/http"
	"strconv"

	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// CampaignHandler handles campaign lifecycle HTTP requests
type CampaignHandler struct {
	campaignService services.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

type createCampaignRequest struct {
	Title              string  `json:"title" binding:"required"`
	Description        string  `json:"description"`
	TotalNumbers       int     `json:"totalNumbers" binding:"required,min=1"`
	NumberPrice        float64 `json:"numberPrice" binding:"required,gt=0"`
	MaxPerBuyer        int     `json:"maxPerBuyer"`
	ReservationMinutes int     `json:"reservationMinutes"`
	Prizes             []struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	} `json:"prizes" binding:"required,min=1,dive"`
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}

	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateCampaignInput{
		Title:              req.Title,
		Description:        req.Description,
		TotalNumbers:       req.TotalNumbers,
		NumberPrice:        req.NumberPrice,
		MaxPerBuyer:        req.MaxPerBuyer,
		ReservationMinutes: req.ReservationMinutes,
	}
	for _, p := range req.Prizes {
		input.Prizes = append(input.Prizes, services.PrizeInput{Name: p.Name, Description: p.Description})
	}

	campaign, err := h.campaignService.Create(c, ownerID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// List handles GET /campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListOwned(c, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// Get handles GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetOwned(c, ownerID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// Activate handles POST /campaigns/:id/activate
func (h *CampaignHandler) Activate(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.Activate(c, ownerID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// Pause handles POST /campaigns/:id/pause
func (h *CampaignHandler) Pause(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.campaignService.Pause(c, ownerID, campaignID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "PAUSED"})
}

// Resume handles POST /campaigns/:id/resume
func (h *CampaignHandler) Resume(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.campaignService.Resume(c, ownerID, campaignID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ACTIVE"})
}

// Stats handles GET /campaigns/:id/stats
func (h *CampaignHandler) Stats(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.campaignService.GetStats(c, ownerID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Transactions handles GET /campaigns/:id/transactions
func (h *CampaignHandler) Transactions(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	transactions, err := h.campaignService.ListTransactions(c, ownerID, campaignID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// PublicPage handles GET /campaigns/slug/:slug
func (h *CampaignHandler) PublicPage(c *gin.Context) {
	page, err := h.campaignService.GetPublicPage(c, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
