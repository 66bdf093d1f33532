// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Result is the outcome of a cart mutation. Message is user-facing and
// consumed verbatim by the presentation layer.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	OfferID  uint `json:"offer_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AddOfferToCart adds quantity tickets of an offer to the user's cart,
// creating the cart lazily on first add. The request is refused when the
// cart line would exceed the offer's remaining ticket count.
func (s *Service) AddOfferToCart(userID string, offerID uint, quantity int) (*Result, error) {
	if quantity <= 0 {
		return &Result{Success: false, Message: "La quantité doit être supérieure à zéro."}, nil
	}

	var off offer.Offer
	if err := s.db.Where("id = ?", offerID).First(&off).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Result{Success: false, Message: "L'offre n'a pas été trouvée."}, nil
		}
		return nil, fmt.Errorf("failed to look up offer: %w", err)
	}

	userCart, err := s.findCart(userID)
	if err != nil {
		return nil, err
	}
	if userCart == nil {
		userCart = &Cart{UserID: userID}
		if err := s.db.Create(userCart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
	}

	var item CartItem
	alreadyInCartQty := 0
	found := true
	err = s.db.Where("cart_id = ? AND offer_id = ?", userCart.ID, offerID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up cart item: %w", err)
		}
		found = false
	} else {
		alreadyInCartQty = item.Qty
	}

	totalRequested := alreadyInCartQty + quantity
	if totalRequested > off.TicketCount {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Vous ne pouvez pas ajouter plus de billets. Quantité disponible : %d", off.TicketCount-alreadyInCartQty),
		}, nil
	}

	if found {
		item.Qty += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item = CartItem{
			CartID:  userCart.ID,
			OfferID: offerID,
			Qty:     quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	}

	return &Result{Success: true, Message: "L'offre a été ajoutée au panier."}, nil
}

// GetCart retrieves the user's cart with items and offers eagerly
// loaded, or nil when the user has no cart
func (s *Service) GetCart(userID string) (*Cart, error) {
	var c Cart
	err := s.db.Preload("Items.Offer").Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return &c, nil
}

// GetCartItemCount returns the sum of all item quantities in the user's
// cart, 0 when no cart exists
func (s *Service) GetCartItemCount(userID string) (int, error) {
	var c Cart
	err := s.db.Preload("Items").Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return c.ItemCount(), nil
}

// RemoveOfferFromCart removes a single unit of an offer from the cart:
// lines with more than one ticket are decremented, the last ticket
// removes the line entirely.
func (s *Service) RemoveOfferFromCart(userID string, offerID uint) (*Result, error) {
	userCart, err := s.findCart(userID)
	if err != nil {
		return nil, err
	}
	if userCart == nil {
		return &Result{Success: false, Message: "Le panier n'a pas été trouvé."}, nil
	}

	var item CartItem
	err = s.db.Where("cart_id = ? AND offer_id = ?", userCart.ID, offerID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Result{Success: false, Message: "L'offre n'a pas été trouvée dans le panier."}, nil
		}
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	if item.Qty > 1 {
		item.Qty -= 1
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to delete cart item: %w", err)
		}
	}

	return &Result{Success: true, Message: "L'offre a été réduite de 1 ou supprimée du panier."}, nil
}

// UpdateOfferQuantity sets the cart line for an offer to newQty
// (absolute set, not delta). Setting 0 removes the line.
func (s *Service) UpdateOfferQuantity(userID string, offerID uint, newQty int) (*Result, error) {
	if newQty < 0 {
		return &Result{Success: false, Message: "La quantité ne peut pas être négative."}, nil
	}

	userCart, err := s.findCart(userID)
	if err != nil {
		return nil, err
	}
	if userCart == nil {
		return &Result{Success: false, Message: "Le panier n'a pas été trouvé."}, nil
	}

	// Offer existence is checked against the catalog, independent of
	// the cart's contents.
	var off offer.Offer
	err = s.db.Where("id = ?", offerID).First(&off).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Result{Success: false, Message: "L'offre n'a pas été trouvée."}, nil
		}
		return nil, fmt.Errorf("failed to look up offer: %w", err)
	}

	if newQty > off.TicketCount {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Vous ne pouvez pas définir cette quantité. Quantité maximale disponible : %d", off.TicketCount),
		}, nil
	}

	var item CartItem
	err = s.db.Where("cart_id = ? AND offer_id = ?", userCart.ID, offerID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Result{Success: false, Message: "L'offre n'a pas été trouvée dans le panier."}, nil
		}
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	if newQty == 0 {
		// Zero means removal; a zero-qty line is never persisted.
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to delete cart item: %w", err)
		}
		return &Result{Success: true, Message: "L'article a été supprimé du panier."}, nil
	}

	item.Qty = newQty
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return &Result{Success: true, Message: "La quantité a été mise à jour."}, nil
}

func (s *Service) findCart(userID string) (*Cart, error) {
	var c Cart
	err := s.db.Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return &c, nil
}
