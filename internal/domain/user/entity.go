// internal/domain/user/entity.go
package user

import (
	"time"
)

// Profile holds the checkout details of an account: contact address,
// shipping information and the preferred payment method.
type Profile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"uniqueIndex;not null;size:64" json:"user_id"`
	Email         string    `gorm:"not null;size:255" json:"email"`
	FirstName     string    `gorm:"size:100" json:"first_name"`
	LastName      string    `gorm:"size:100" json:"last_name"`
	Street        string    `gorm:"size:255" json:"street"`
	StreetNumber  string    `gorm:"size:20" json:"street_number"`
	PostalCode    string    `gorm:"size:20" json:"postal_code"`
	City          string    `gorm:"size:100" json:"city"`
	Country       string    `gorm:"size:100" json:"country"`
	PaymentMethod string    `gorm:"size:50" json:"payment_method"`
	PasswordHash  string    `gorm:"size:255" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Profile) TableName() string {
	return "user_profiles"
}

// FullName returns the display name for emails and invoices
func (p *Profile) FullName() string {
	if p.FirstName == "" && p.LastName == "" {
		return p.Email
	}
	return p.FirstName + " " + p.LastName
}
