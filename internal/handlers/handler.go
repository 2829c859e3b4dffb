package handlers

import (
	"errors"
	"net/http"

	"github.com/WebuildSoft/myrifa-sub001/internal/middleware"
	"github.com/WebuildSoft/myrifa-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps service errors onto HTTP responses. Unknown errors
// become opaque 500s so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "One or more numbers are no longer available"})
	case errors.Is(err, services.ErrAlreadyFinal):
		c.JSON(http.StatusConflict, gin.H{"error": "Transaction is already finalized"})
	case errors.Is(err, services.ErrAlreadyDrawn):
		c.JSON(http.StatusConflict, gin.H{"error": "Prize has already been drawn"})
	case errors.Is(err, services.ErrNoEligibleTickets):
		c.JSON(http.StatusConflict, gin.H{"error": "No paid tickets to draw from"})
	case errors.Is(err, services.ErrPaymentProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// organizerID pulls the authenticated organizer from the context set by
// the auth middleware. Aborts with 401 when missing.
func organizerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.OrganizerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return id, ok
}

// pathID parses an ObjectID path parameter
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
