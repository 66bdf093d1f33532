// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/domain/order"
	"github.com/your-org/ticketing-backend/internal/domain/user"
	"github.com/your-org/ticketing-backend/internal/interfaces/http/middleware"
	"github.com/your-org/ticketing-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// InvoiceHandler renders order invoices as PDF documents
type InvoiceHandler struct {
	orderService *order.Service
	userService  *user.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: order.NewService(db, cfg, cart.NewService(db, cfg), nil, logger),
		userService:  user.NewService(db, cfg),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// GetInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	o, err := h.orderService.GetOrder(uint(id))
	if err != nil || o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	buyer, err := h.userService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve buyer profile",
		})
		return
	}

	buf, err := h.pdfService.GenerateInvoice(o, buyer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="facture-%d.pdf"`, o.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
