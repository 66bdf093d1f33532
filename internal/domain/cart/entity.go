// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
)

// Cart represents a user's in-progress selection of offers.
// A user owns at most one cart at any time.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null;size:64" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem represents one offer line in a cart
type CartItem struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	CartID    uint        `gorm:"not null;index" json:"cart_id"`
	OfferID   uint        `gorm:"not null;index" json:"offer_id"`
	Offer     offer.Offer `gorm:"foreignKey:OfferID" json:"offer"`
	Qty       int         `gorm:"not null" json:"qty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName overrides
func (Cart) TableName() string     { return "carts" }
func (CartItem) TableName() string { return "cart_items" }

// TotalPrice computes the derived cart total, qty * offer price summed
// over the loaded items. Recomputed on every call, never stored.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Offer.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return total
}

// ItemCount returns the sum of quantities across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Qty
	}
	return count
}
