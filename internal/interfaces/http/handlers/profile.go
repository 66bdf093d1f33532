// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/user"
	"github.com/your-org/ticketing-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ProfileHandler handles checkout profile endpoints
type ProfileHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *gorm.DB, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		userService: user.NewService(db, cfg),
		config:      cfg,
	}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	p, err := h.userService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve profile",
		})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Profile not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": p,
	})
}

// UpsertProfile handles PUT /profile
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req user.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.userService.UpsertProfile(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile saved successfully",
		"data":    p,
	})
}
