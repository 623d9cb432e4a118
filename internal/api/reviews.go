package api

import (
	"net/http" // HTTP status codes

	"catalog_system/internal/authz"      // Authorization policy
	"catalog_system/internal/middleware" // Session resolution
	"catalog_system/internal/store"      // Query & account layer

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for rating an item. A pointer keeps an explicit zero
// distinguishable from an absent field; out-of-range values are clamped
// downstream.
type RateRequest struct {
	Rating *int16 `json:"rating" binding:"required"`
}

// RateHandler records or replaces the caller's rating of one item
func RateHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActingUser(c)
		if !authz.CanRate(actor) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req RateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := s.Rate(c.Request.Context(), c.Param("locator"), actor.Username, *req.Rating); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Rating saved"})
	}
}

// UnrateHandler withdraws the caller's rating; withdrawing a rating that
// was never given is not an error
func UnrateHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActingUser(c)
		if !authz.CanRate(actor) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := s.Unrate(c.Request.Context(), c.Param("locator"), actor.Username); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Rating removed"})
	}
}
