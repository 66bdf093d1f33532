// internal/domain/order/service_test.go
package order

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	calls int
	last  *Order
	err   error
}

func (n *recordingNotifier) NotifyOrderPlaced(_ context.Context, o *Order) error {
	n.calls++
	n.last = o
	return n.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&offer.Offer{}, &cart.Cart{}, &cart.CartItem{}, &Order{}, &OrderItem{},
	))
	return db
}

func newTestService(t *testing.T, cfg *config.Config, notifier Notifier) (*Service, *cart.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	testLogger := logrus.New()
	testLogger.SetOutput(io.Discard)

	cartSvc := cart.NewService(db, cfg)
	return NewService(db, cfg, cartSvc, notifier, testLogger), cartSvc, db
}

func seedOffer(t *testing.T, db *gorm.DB, name string, price string, tickets int) *offer.Offer {
	t.Helper()
	o := &offer.Offer{
		Name:        name,
		Description: name,
		ImageURL:    "https://example.com/" + name + ".jpg",
		Price:       decimal.RequireFromString(price),
		TicketCount: tickets,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func ticketCount(t *testing.T, db *gorm.DB, offerID uint) int {
	t.Helper()
	var o offer.Offer
	require.NoError(t, db.First(&o, offerID).Error)
	return o.TicketCount
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, _, db := newTestService(t, &config.Config{}, notifier)

	result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Le panier est vide, il est impossible de passer une commande.", result.Message)
	assert.Nil(t, result.Order)

	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Equal(t, 0, notifier.calls)
}

func TestPlaceOrderConvertsCartAndDecrementsStock(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, cartSvc, db := newTestService(t, &config.Config{}, notifier)

	solo := seedOffer(t, db, "solo", "50.00", 100)
	duo := seedOffer(t, db, "duo", "90.00", 60)

	_, err := cartSvc.AddOfferToCart("user-1", solo.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddOfferToCart("user-1", duo.ID, 1)
	require.NoError(t, err)

	result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "La commande a été passée et le panier a été vidé.", result.Message)

	require.NotNil(t, result.Order)
	o := result.Order
	assert.Equal(t, "user-1", o.UserID)
	assert.False(t, o.IsPaid)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("190.00")),
		"expected 190.00, got %s", o.TotalPrice)
	require.Len(t, o.Items, 2)

	// Each item price is the line total at the time of order.
	lineTotals := map[uint]string{solo.ID: "100.00", duo.ID: "90.00"}
	for _, item := range o.Items {
		expected := decimal.RequireFromString(lineTotals[item.OfferID])
		assert.True(t, item.Price.Equal(expected),
			"offer %d: expected %s, got %s", item.OfferID, expected, item.Price)
		assert.NotEmpty(t, item.Offer.Name)
	}

	assert.Equal(t, 98, ticketCount(t, db, solo.ID))
	assert.Equal(t, 59, ticketCount(t, db, duo.ID))

	// Cart and its lines are gone.
	fresh, err := cartSvc.GetCart("user-1")
	require.NoError(t, err)
	assert.Nil(t, fresh)
	var lines int64
	require.NoError(t, db.Model(&cart.CartItem{}).Count(&lines).Error)
	assert.EqualValues(t, 0, lines)

	require.Equal(t, 1, notifier.calls)
	assert.Equal(t, o.ID, notifier.last.ID)
}

func TestPlaceOrderClampsStockAtZero(t *testing.T) {
	svc, _, db := newTestService(t, &config.Config{}, nil)

	o := seedOffer(t, db, "duo", "90.00", 2)

	// A stale cart can hold more tickets than remain in stock.
	c := &cart.Cart{UserID: "user-1"}
	require.NoError(t, db.Create(c).Error)
	require.NoError(t, db.Create(&cart.CartItem{CartID: c.ID, OfferID: o.ID, Qty: 5}).Error)

	result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, result.Success)

	assert.Equal(t, 0, ticketCount(t, db, o.ID))
}

func TestPlaceOrderNotifierFailureDoesNotUndoOrder(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp unreachable")}
	svc, cartSvc, db := newTestService(t, &config.Config{}, notifier)

	o := seedOffer(t, db, "solo", "50.00", 100)
	_, err := cartSvc.AddOfferToCart("user-1", o.ID, 1)
	require.NoError(t, err)

	result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, notifier.calls)

	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderTransactionalSucceeds(t *testing.T) {
	cfg := &config.Config{}
	cfg.Checkout.TransactionalPlacement = true
	svc, cartSvc, db := newTestService(t, cfg, nil)

	o := seedOffer(t, db, "solo", "50.00", 10)
	_, err := cartSvc.AddOfferToCart("user-1", o.ID, 4)
	require.NoError(t, err)

	result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 6, ticketCount(t, db, o.ID))
}

func TestPlaceOrderTransactionalRollsBackOnInsufficientStock(t *testing.T) {
	cfg := &config.Config{}
	cfg.Checkout.TransactionalPlacement = true
	svc, _, db := newTestService(t, cfg, nil)

	o := seedOffer(t, db, "duo", "90.00", 2)

	c := &cart.Cart{UserID: "user-1"}
	require.NoError(t, db.Create(c).Error)
	require.NoError(t, db.Create(&cart.CartItem{CartID: c.ID, OfferID: o.ID, Qty: 5}).Error)

	_, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.Error(t, err)

	// Nothing committed: no order, stock untouched, cart still there.
	var orders int64
	require.NoError(t, db.Model(&Order{}).Count(&orders).Error)
	assert.EqualValues(t, 0, orders)
	assert.Equal(t, 2, ticketCount(t, db, o.ID))

	var carts int64
	require.NoError(t, db.Model(&cart.Cart{}).Count(&carts).Error)
	assert.EqualValues(t, 1, carts)
}

func TestGetUserOrders(t *testing.T) {
	svc, cartSvc, db := newTestService(t, &config.Config{}, nil)

	o := seedOffer(t, db, "solo", "50.00", 100)

	for i := 0; i < 2; i++ {
		_, err := cartSvc.AddOfferToCart("user-1", o.ID, 1)
		require.NoError(t, err)
		result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
		require.NoError(t, err)
		require.True(t, result.Success)
	}

	orders, err := svc.GetUserOrders("user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	other, err := svc.GetUserOrders("user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMarkPaid(t *testing.T) {
	svc, cartSvc, db := newTestService(t, &config.Config{}, nil)

	o := seedOffer(t, db, "solo", "50.00", 100)
	_, err := cartSvc.AddOfferToCart("user-1", o.ID, 1)
	require.NoError(t, err)
	result, err := svc.PlaceOrderAndClearCart(context.Background(), "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(result.Order.ID))

	paid, err := svc.GetOrder(result.Order.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)

	assert.Error(t, svc.MarkPaid(9999))
}
