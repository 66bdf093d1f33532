// internal/domain/offer/service.go
package offer

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/ticketing-backend/internal/config"
	"gorm.io/gorm"
)

// ErrOfferInUse is returned when deleting an offer still referenced by a cart
var ErrOfferInUse = errors.New("offer is referenced by at least one cart")

// Service handles offer catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new offer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateOfferRequest represents offer creation data
type CreateOfferRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	ImageURL    string          `json:"image_url" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	TicketCount int             `json:"ticket_count" binding:"required,min=0"`
}

// UpdateOfferRequest represents offer update data
type UpdateOfferRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	TicketCount *int             `json:"ticket_count,omitempty"`
}

// GetOffers retrieves all offers in the catalog
func (s *Service) GetOffers() ([]Offer, error) {
	var offers []Offer
	if err := s.db.Order("id").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve offers: %w", err)
	}
	return offers, nil
}

// GetOffer retrieves a single offer by id, returning nil when absent
func (s *Service) GetOffer(id uint) (*Offer, error) {
	var o Offer
	result := s.db.Where("id = ?", id).First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve offer: %w", result.Error)
	}
	return &o, nil
}

// CreateOffer adds a new offer to the catalog
func (s *Service) CreateOffer(req *CreateOfferRequest) (*Offer, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("offer price cannot be negative")
	}
	if req.TicketCount < 0 {
		return nil, fmt.Errorf("ticket count cannot be negative")
	}

	o := Offer{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		TicketCount: req.TicketCount,
	}

	if err := s.db.Create(&o).Error; err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return &o, nil
}

// UpdateOffer applies partial updates to an existing offer
func (s *Service) UpdateOffer(id uint, req *UpdateOfferRequest) (*Offer, error) {
	var o Offer
	if err := s.db.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("offer not found")
		}
		return nil, fmt.Errorf("failed to retrieve offer: %w", err)
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.ImageURL != nil {
		o.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("offer price cannot be negative")
		}
		o.Price = *req.Price
	}
	if req.TicketCount != nil {
		if *req.TicketCount < 0 {
			return nil, fmt.Errorf("ticket count cannot be negative")
		}
		o.TicketCount = *req.TicketCount
	}

	if err := s.db.Save(&o).Error; err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}
	return &o, nil
}

// DeleteOffer removes an offer unless a cart item still references it
func (s *Service) DeleteOffer(id uint) error {
	var o Offer
	if err := s.db.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("offer not found")
		}
		return fmt.Errorf("failed to retrieve offer: %w", err)
	}

	// Carted offers cannot be deleted (restrict, not cascade).
	var referenced int64
	if err := s.db.Table("cart_items").Where("offer_id = ?", id).Count(&referenced).Error; err != nil {
		return fmt.Errorf("failed to check cart references: %w", err)
	}
	if referenced > 0 {
		return ErrOfferInUse
	}

	if err := s.db.Delete(&o).Error; err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}
