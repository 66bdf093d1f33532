// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userCart, err := h.cartService.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	if userCart == nil {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"items":       []cart.CartItem{},
				"total_price": "0",
				"item_count":  0,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":          userCart.ID,
			"items":       userCart.Items,
			"total_price": userCart.TotalPrice(),
			"item_count":  userCart.ItemCount(),
		},
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.cartService.GetCartItemCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"count": count,
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.cartService.AddOfferToCart(userID, req.OfferID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add offer to cart",
		})
		return
	}

	h.respondWithResult(c, userID, result)
}

// UpdateCartItem handles PUT /cart/items/:id where :id is the offer ID
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	offerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID",
		})
		return
	}

	var req cart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.cartService.UpdateOfferQuantity(userID, uint(offerID), *req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	h.respondWithResult(c, userID, result)
}

// RemoveFromCart handles DELETE /cart/items/:id where :id is the offer
// ID. Removes one ticket, not the whole line.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	offerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid offer ID",
		})
		return
	}

	result, err := h.cartService.RemoveOfferFromCart(userID, uint(offerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove offer from cart",
		})
		return
	}

	h.respondWithResult(c, userID, result)
}

// respondWithResult renders a cart mutation outcome. Business refusals
// keep their user-facing message and a 200 status; the success flag
// tells the client apart.
func (h *CartHandler) respondWithResult(c *gin.Context, userID string, result *cart.Result) {
	payload := gin.H{
		"success": result.Success,
		"message": result.Message,
	}

	if result.Success {
		if userCart, err := h.cartService.GetCart(userID); err == nil && userCart != nil {
			payload["data"] = gin.H{
				"id":          userCart.ID,
				"items":       userCart.Items,
				"total_price": userCart.TotalPrice(),
				"item_count":  userCart.ItemCount(),
			}
		}
	}

	c.JSON(http.StatusOK, payload)
}
