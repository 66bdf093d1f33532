// internal/domain/offer/entity.go
package offer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer represents a purchasable ticket package with remaining stock
type Offer struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"size:512" json:"image_url"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	TicketCount int             `gorm:"not null;default:0;check:ticket_count >= 0" json:"ticket_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (Offer) TableName() string {
	return "offers"
}

// HasStock reports whether at least quantity tickets remain
func (o *Offer) HasStock(quantity int) bool {
	return o.TicketCount >= quantity
}
