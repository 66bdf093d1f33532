// internal/interfaces/http/handlers/offer.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
	"gorm.io/gorm"
)

// OfferHandler handles offer catalog endpoints
type OfferHandler struct {
	offerService *offer.Service
	config       *config.Config
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(db *gorm.DB, cfg *config.Config) *OfferHandler {
	return &OfferHandler{
		offerService: offer.NewService(db, cfg),
		config:       cfg,
	}
}

// GetOffers handles GET /offers
func (h *OfferHandler) GetOffers(c *gin.Context) {
	offers, err := h.offerService.GetOffers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve offers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": offers,
	})
}

// GetOffer handles GET /offers/:id
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID",
		})
		return
	}

	o, err := h.offerService.GetOffer(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve offer",
		})
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Offer not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": o,
	})
}

// AdminCreateOffer handles POST /admin/offers
func (h *OfferHandler) AdminCreateOffer(c *gin.Context) {
	var req offer.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.offerService.CreateOffer(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer created successfully",
		"data":    o,
	})
}

// AdminUpdateOffer handles PUT /admin/offers/:id
func (h *OfferHandler) AdminUpdateOffer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID",
		})
		return
	}

	var req offer.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.offerService.UpdateOffer(uint(id), &req)
	if err != nil {
		if err.Error() == "offer not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer updated successfully",
		"data":    o,
	})
}

// AdminDeleteOffer handles DELETE /admin/offers/:id
func (h *OfferHandler) AdminDeleteOffer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID",
		})
		return
	}

	if err := h.offerService.DeleteOffer(uint(id)); err != nil {
		if errors.Is(err, offer.ErrOfferInUse) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Offer is still referenced by at least one cart",
			})
			return
		}
		if err.Error() == "offer not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete offer",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer deleted successfully",
	})
}
