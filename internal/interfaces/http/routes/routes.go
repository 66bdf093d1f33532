// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/interfaces/http/handlers"
	"github.com/your-org/ticketing-backend/internal/interfaces/http/middleware"
	"github.com/your-org/ticketing-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	jwtManager := auth.NewJWTManager(cfg)

	setupOfferRoutes(rg, db, cfg, jwtManager)
	setupCartRoutes(rg, db, cfg, jwtManager)
	setupOrderRoutes(rg, db, cfg, jwtManager, logger)
	setupProfileRoutes(rg, db, cfg, jwtManager)
	setupAdminRoutes(rg, db, cfg, jwtManager)
}

// setupOfferRoutes sets up the public offer catalog
func setupOfferRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, jwtManager *auth.JWTManager) {
	offerHandler := handlers.NewOfferHandler(db, cfg)

	offers := rg.Group("/offers")
	offers.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		offers.GET("", offerHandler.GetOffers)
		offers.GET("/:id", offerHandler.GetOffer)
	}
}

// setupCartRoutes sets up cart routes, all requiring authentication
func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, jwtManager *auth.JWTManager) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(jwtManager))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// setupOrderRoutes sets up order placement and history routes
func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, jwtManager *auth.JWTManager, logger *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(db, cfg, logger)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg, logger)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(jwtManager))
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/pay", orderHandler.MarkOrderPaid)
		orders.GET("/:id/invoice", invoiceHandler.GetInvoice)
	}
}

// setupProfileRoutes sets up checkout profile routes
func setupProfileRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, jwtManager *auth.JWTManager) {
	profileHandler := handlers.NewProfileHandler(db, cfg)

	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware(jwtManager))
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.UpsertProfile)
	}
}

// setupAdminRoutes sets up offer management, restricted to admins
func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, jwtManager *auth.JWTManager) {
	offerHandler := handlers.NewOfferHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager))
	admin.Use(middleware.AdminMiddleware())
	{
		offers := admin.Group("/offers")
		{
			offers.POST("", offerHandler.AdminCreateOffer)
			offers.PUT("/:id", offerHandler.AdminUpdateOffer)
			offers.DELETE("/:id", offerHandler.AdminDeleteOffer)
		}
	}
}
