// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"

	"github.com/your-org/ticketing-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles checkout profile business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new profile service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpsertProfileRequest represents profile create/update data
type UpsertProfileRequest struct {
	Email         string `json:"email" binding:"required,email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Street        string `json:"street"`
	StreetNumber  string `json:"street_number"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
}

// GetProfile retrieves the profile of a user, nil when none exists
func (s *Service) GetProfile(userID string) (*Profile, error) {
	var p Profile
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile creates or updates the user's checkout profile
func (s *Service) UpsertProfile(userID string, req *UpsertProfileRequest) (*Profile, error) {
	p, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Profile{UserID: userID}
	}

	p.Email = req.Email
	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.Street = req.Street
	p.StreetNumber = req.StreetNumber
	p.PostalCode = req.PostalCode
	p.City = req.City
	p.Country = req.Country
	p.PaymentMethod = req.PaymentMethod

	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return p, nil
}
