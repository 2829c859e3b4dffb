package handlers

import (
	"net/http"

	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// DrawHandler handles winner selection HTTP requests
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// DrawPrize handles POST /campaigns/:id/prizes/:prizeId/draw
func (h *DrawHandler) DrawPrize(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}
	prizeID, ok := pathID(c, "prizeId")
	if !ok {
		return
	}

	prize, err := h.drawService.DrawPrize(c, ownerID, campaignID, prizeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prize)
}

// ListAudits handles GET /campaigns/:id/draw-audits
func (h *DrawHandler) ListAudits(c *gin.Context) {
	ownerID, ok := organizerID(c)
	if !ok {
		return
	}
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}

	audits, err := h.drawService.ListAudits(c, ownerID, campaignID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, audits)
}
