// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier is told about completed orders. Implementations must not
// block placement on delivery problems; errors are logged and dropped.
type Notifier interface {
	NotifyOrderPlaced(ctx context.Context, o *Order) error
}

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	notifier    Notifier
	logger      *logrus.Logger
}

// NewService creates a new order service. notifier may be nil.
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, notifier Notifier, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
		notifier:    notifier,
		logger:      logger,
	}
}

// PlaceOrderResult is the outcome of an order placement
type PlaceOrderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   *Order `json:"order,omitempty"`
}

// PlaceOrderAndClearCart converts the user's cart into an immutable
// order, decrements offer stock (clamped at zero) and removes the cart.
// With Checkout.TransactionalPlacement enabled all persistence steps run
// in one locked transaction; otherwise they run sequentially like the
// storefront always has.
func (s *Service) PlaceOrderAndClearCart(ctx context.Context, userID string) (*PlaceOrderResult, error) {
	userCart, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if userCart == nil || len(userCart.Items) == 0 {
		return &PlaceOrderResult{
			Success: false,
			Message: "Le panier est vide, il est impossible de passer une commande.",
		}, nil
	}

	var placed *Order
	if s.config.Checkout.TransactionalPlacement {
		placed, err = s.placeLocked(userCart)
	} else {
		placed, err = s.placeSequential(userCart)
	}
	if err != nil {
		return nil, err
	}

	// Reload with offers attached for the confirmation payload.
	placed, err = s.GetOrder(placed.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyOrderPlaced(ctx, placed); err != nil {
			// The order stands even when the confirmation cannot be
			// delivered.
			s.logger.WithError(err).WithField("order_id", placed.ID).
				Warn("order confirmation notification failed")
		}
	}

	return &PlaceOrderResult{
		Success: true,
		Message: "La commande a été passée et le panier a été vidé.",
		Order:   placed,
	}, nil
}

// GetOrder retrieves a single order with items and offers
func (s *Service) GetOrder(id uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items.Offer").Where("id = ?", id).First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &o, nil
}

// GetUserOrders retrieves all orders of a user, newest first
func (s *Service) GetUserOrders(userID string) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items.Offer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// MarkPaid flips the IsPaid flag after an external payment completes.
// The cart/order workflow itself never reads the flag.
func (s *Service) MarkPaid(orderID uint) error {
	result := s.db.Model(&Order{}).Where("id = ?", orderID).Update("is_paid", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark order paid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

// placeSequential runs order creation, stock decrement and cart
// clearing as separate persistence steps with no rollback boundary.
func (s *Service) placeSequential(userCart *cart.Cart) (*Order, error) {
	newOrder := s.buildOrder(userCart)

	if err := s.db.Create(newOrder).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range newOrder.Items {
		if err := s.decrementStock(s.db, item.OfferID, item.Qty); err != nil {
			return nil, err
		}
	}

	if err := s.db.Where("cart_id = ?", userCart.ID).Delete(&cart.CartItem{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear cart items: %w", err)
	}
	if err := s.db.Delete(&cart.Cart{}, userCart.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to delete cart: %w", err)
	}

	return newOrder, nil
}

// placeLocked performs the whole placement in one transaction, taking
// row locks on the offers so concurrent checkouts cannot oversell.
func (s *Service) placeLocked(userCart *cart.Cart) (*Order, error) {
	newOrder := s.buildOrder(userCart)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range userCart.Items {
			// SQLite serializes writers on its own; row locks only
			// exist on Postgres.
			q := tx
			if tx.Dialector.Name() == "postgres" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var off offer.Offer
			if err := q.First(&off, item.OfferID).Error; err != nil {
				return fmt.Errorf("failed to lock offer %d: %w", item.OfferID, err)
			}
			if off.TicketCount < item.Qty {
				return fmt.Errorf("insufficient inventory for offer %d: available %d, requested %d",
					off.ID, off.TicketCount, item.Qty)
			}
		}

		if err := tx.Create(newOrder).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range newOrder.Items {
			if err := s.decrementStock(tx, item.OfferID, item.Qty); err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", userCart.ID).Delete(&cart.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		return tx.Delete(&cart.Cart{}, userCart.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return newOrder, nil
}

// buildOrder snapshots the cart into an order. Each item price is the
// line total at the time of order.
func (s *Service) buildOrder(userCart *cart.Cart) *Order {
	items := make([]OrderItem, 0, len(userCart.Items))
	for _, ci := range userCart.Items {
		items = append(items, OrderItem{
			OfferID: ci.OfferID,
			Qty:     ci.Qty,
			Price:   ci.Offer.Price.Mul(decimal.NewFromInt(int64(ci.Qty))),
		})
	}

	return &Order{
		UserID:     userCart.UserID,
		TotalPrice: userCart.TotalPrice(),
		IsPaid:     false,
		Items:      items,
	}
}

// decrementStock subtracts qty tickets from an offer, clamped at zero
// so stock is never observed negative.
func (s *Service) decrementStock(db *gorm.DB, offerID uint, qty int) error {
	var off offer.Offer
	if err := db.First(&off, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up offer %d: %w", offerID, err)
	}

	off.TicketCount -= qty
	if off.TicketCount < 0 {
		off.TicketCount = 0
	}

	if err := db.Save(&off).Error; err != nil {
		return fmt.Errorf("failed to update offer stock: %w", err)
	}
	return nil
}
