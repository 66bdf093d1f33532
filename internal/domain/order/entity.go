// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
)

// Order is an immutable snapshot of a completed purchase, created from
// a cart at checkout
type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     string          `gorm:"not null;index;size:64" json:"user_id"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	IsPaid     bool            `gorm:"not null;default:false" json:"is_paid"`
	CreatedAt  time.Time       `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem snapshots one cart line at the time of order. Price is the
// line total (qty * unit price), not the unit price.
type OrderItem struct {
	ID      uint            `gorm:"primaryKey" json:"id"`
	OrderID uint            `gorm:"not null;index" json:"order_id"`
	OfferID uint            `gorm:"not null;index" json:"offer_id"`
	Offer   offer.Offer     `gorm:"foreignKey:OfferID" json:"offer"`
	Qty     int             `gorm:"not null" json:"qty"`
	Price   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
