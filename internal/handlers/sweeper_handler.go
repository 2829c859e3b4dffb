package handlers

import (
	"net/http"

	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

// SweeperHandler exposes the expiry sweeper trigger
type SweeperHandler struct {
	sweeperService services.SweeperService
}

// NewSweeperHandler creates a new SweeperHandler
func NewSweeperHandler(sweeperService services.SweeperService) *SweeperHandler {
	return &SweeperHandler{sweeperService: sweeperService}
}

// Run handles POST /sweeper/run
func (h *SweeperHandler) Run(c *gin.Context) {
	result, err := h.sweeperService.SweepExpired(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
