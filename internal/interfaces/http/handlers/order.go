// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/domain/notification"
	"github.com/your-org/ticketing-backend/internal/domain/order"
	"github.com/your-org/ticketing-backend/internal/domain/user"
	"github.com/your-org/ticketing-backend/internal/interfaces/http/middleware"
	"github.com/your-org/ticketing-backend/internal/pkg/email"
	"github.com/your-org/ticketing-backend/internal/pkg/qrcode"
	"gorm.io/gorm"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler with its notification
// pipeline wired in
func NewOrderHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *OrderHandler {
	userService := user.NewService(db, cfg)
	notifier := notification.NewService(
		cfg,
		userService,
		email.NewService(cfg),
		qrcode.NewService(256),
		logger,
	)

	return &OrderHandler{
		orderService: order.NewService(db, cfg, cart.NewService(db, cfg), notifier, logger),
		config:       cfg,
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result, err := h.orderService.PlaceOrderAndClearCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	payload := gin.H{
		"success": result.Success,
		"message": result.Message,
	}
	if result.Order != nil {
		payload["data"] = result.Order
	}

	c.JSON(http.StatusOK, payload)
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	o := h.loadOwnedOrder(c, userID)
	if o == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": o,
	})
}

// MarkOrderPaid handles PUT /orders/:id/pay
func (h *OrderHandler) MarkOrderPaid(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	o := h.loadOwnedOrder(c, userID)
	if o == nil {
		return
	}

	if err := h.orderService.MarkPaid(o.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to mark order paid",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order marked as paid",
	})
}

// loadOwnedOrder parses the :id param and loads the order, enforcing
// that it belongs to the authenticated user. Responds and returns nil
// on any failure.
func (h *OrderHandler) loadOwnedOrder(c *gin.Context, userID string) *order.Order {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return nil
	}

	o, err := h.orderService.GetOrder(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return nil
	}

	// Never reveal other users' orders, even their existence.
	if o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return nil
	}

	return o
}
