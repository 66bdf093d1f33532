// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
	"github.com/your-org/ticketing-backend/internal/domain/order"
	"github.com/your-org/ticketing-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: offers before carts/orders that reference them.
	models := []interface{}{
		&user.Profile{},
		&offer.Offer{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user ON carts(user_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_cart_offer ON cart_items(cart_id, offer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_offer ON order_items(offer_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData inserts sample offers and a demo account for
// development environments
func (m *Migration) SeedInitialData() error {
	var offerCount int64
	if err := m.db.Model(&offer.Offer{}).Count(&offerCount).Error; err != nil {
		return fmt.Errorf("failed to count offers: %w", err)
	}

	if offerCount == 0 {
		log.Println("🌱 Seeding sample offers...")

		offers := []offer.Offer{
			{
				Name:        "Offre Solo",
				Description: "Un billet pour une épreuve au choix.",
				ImageURL:    "/images/offres/solo.jpg",
				Price:       decimal.NewFromInt(50),
				TicketCount: 100,
			},
			{
				Name:        "Offre Duo",
				Description: "Deux billets pour une épreuve au choix.",
				ImageURL:    "/images/offres/duo.jpg",
				Price:       decimal.NewFromInt(90),
				TicketCount: 60,
			},
			{
				Name:        "Offre Familiale",
				Description: "Quatre billets pour une épreuve au choix.",
				ImageURL:    "/images/offres/familiale.jpg",
				Price:       decimal.NewFromInt(160),
				TicketCount: 40,
			},
		}

		if err := m.db.Create(&offers).Error; err != nil {
			return fmt.Errorf("failed to seed offers: %w", err)
		}
	}

	var profileCount int64
	if err := m.db.Model(&user.Profile{}).Count(&profileCount).Error; err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}

	if profileCount == 0 {
		log.Println("🌱 Seeding demo account...")

		hash, err := bcrypt.GenerateFromPassword([]byte("demo-password-change-me"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}

		demo := user.Profile{
			UserID:        "demo-user",
			Email:         "demo@example.com",
			FirstName:     "Jean",
			LastName:      "Dupont",
			Street:        "Rue de Rivoli",
			StreetNumber:  "12",
			PostalCode:    "75001",
			City:          "Paris",
			Country:       "France",
			PaymentMethod: "card",
			PasswordHash:  string(hash),
		}

		if err := m.db.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to seed demo account: %w", err)
		}
	}

	log.Println("✅ Data seeding completed")
	return nil
}

// GetTableInfo logs row counts per table for development visibility
func (m *Migration) GetTableInfo() {
	tables := []string{"offers", "carts", "cart_items", "orders", "order_items", "user_profiles"}

	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("Table %s: error counting rows: %v", table, err)
			continue
		}
		log.Printf("Table %s: %d rows", table, count)
	}
}
