// internal/domain/notification/service.go
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/order"
	"github.com/your-org/ticketing-backend/internal/domain/user"
	"github.com/your-org/ticketing-backend/internal/pkg/email"
	"github.com/your-org/ticketing-backend/internal/pkg/qrcode"
)

// Service delivers order confirmations: a QR ticket code rendered from
// the order payload, attached to an HTML confirmation email. It
// implements order.Notifier.
type Service struct {
	config      *config.Config
	userService *user.Service
	emailer     *email.Service
	codes       *qrcode.Service
	logger      *logrus.Logger
}

// NewService creates a new notification service
func NewService(cfg *config.Config, userService *user.Service, emailer *email.Service, codes *qrcode.Service, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		config:      cfg,
		userService: userService,
		emailer:     emailer,
		codes:       codes,
		logger:      logger,
	}
}

// NotifyOrderPlaced emails the buyer a confirmation with the scannable
// ticket code attached. The order is already committed when this runs;
// delivery problems are reported back for logging, never rolled back.
func (s *Service) NotifyOrderPlaced(ctx context.Context, o *order.Order) error {
	profile, err := s.userService.GetProfile(o.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve contact address: %w", err)
	}
	if profile == nil || profile.Email == "" {
		return fmt.Errorf("no contact address on file for user %s", o.UserID)
	}

	png, err := s.codes.Generate(s.ticketPayload(o))
	if err != nil {
		return fmt.Errorf("failed to render ticket code: %w", err)
	}

	items := make([]email.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, email.OrderItem{
			Name:      item.Offer.Name,
			Quantity:  item.Qty,
			LineTotal: item.Price.StringFixed(2),
		})
	}

	data := email.OrderConfirmationData{
		OrderID:    o.ID,
		OrderDate:  o.CreatedAt.Format("02/01/2006"),
		OrderTotal: o.TotalPrice.StringFixed(2),
		Items:      items,
	}
	data.UserName = profile.FullName()
	data.UserEmail = profile.Email

	attachment := &email.Attachment{
		Filename:    fmt.Sprintf("billet-commande-%d.png", o.ID),
		ContentType: "image/png",
		Data:        png,
	}

	if err := s.emailer.SendOrderConfirmationEmail(ctx, data, attachment); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": o.ID,
		"user_id":  o.UserID,
	}).Info("order confirmation sent")

	return nil
}

// ticketPayload builds the string encoded into the scannable code.
// The token makes each issued ticket unique and non-guessable.
func (s *Service) ticketPayload(o *order.Order) string {
	return fmt.Sprintf("order:%d;user:%s;token:%s", o.ID, o.UserID, uuid.NewString())
}
