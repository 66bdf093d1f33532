// internal/domain/offer/service_test.go
package offer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cartItemRow mirrors the cart line table for reference checks without
// importing the cart package (which depends on this one).
type cartItemRow struct {
	ID      uint `gorm:"primaryKey"`
	CartID  uint
	OfferID uint
	Qty     int
}

func (cartItemRow) TableName() string { return "cart_items" }

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Offer{}, &cartItemRow{}))
	return NewService(db, &config.Config{}), db
}

func validCreateRequest() *CreateOfferRequest {
	return &CreateOfferRequest{
		Name:        "Offre Solo",
		Description: "Un billet pour une personne",
		ImageURL:    "https://example.com/solo.jpg",
		Price:       decimal.RequireFromString("50.00"),
		TicketCount: 100,
	}
}

func TestCreateAndGetOffer(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateOffer(validCreateRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetOffer(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Offre Solo", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 100, got.TicketCount)
	assert.True(t, got.HasStock(1))
	assert.False(t, got.HasStock(101))
}

func TestGetOfferNilWhenAbsent(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.GetOffer(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOffersOrderedByID(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{"solo", "duo", "familiale"} {
		req := validCreateRequest()
		req.Name = name
		_, err := svc.CreateOffer(req)
		require.NoError(t, err)
	}

	offers, err := svc.GetOffers()
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, "solo", offers[0].Name)
	assert.Equal(t, "familiale", offers[2].Name)
}

func TestCreateOfferRejectsNegativeValues(t *testing.T) {
	svc, _ := newTestService(t)

	req := validCreateRequest()
	req.Price = decimal.RequireFromString("-1.00")
	_, err := svc.CreateOffer(req)
	assert.Error(t, err)

	req = validCreateRequest()
	req.TicketCount = -5
	_, err = svc.CreateOffer(req)
	assert.Error(t, err)
}

func TestUpdateOfferAppliesPartialChanges(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateOffer(validCreateRequest())
	require.NoError(t, err)

	newCount := 40
	newPrice := decimal.RequireFromString("55.00")
	updated, err := svc.UpdateOffer(created.ID, &UpdateOfferRequest{
		TicketCount: &newCount,
		Price:       &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, updated.TicketCount)
	assert.True(t, updated.Price.Equal(newPrice))
	// Untouched fields keep their values.
	assert.Equal(t, created.Name, updated.Name)
}

func TestUpdateOfferNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "x"
	_, err := svc.UpdateOffer(42, &UpdateOfferRequest{Name: &name})
	assert.Error(t, err)
}

func TestDeleteOffer(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateOffer(validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOffer(created.ID))

	got, err := svc.GetOffer(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteOfferRefusedWhileCarted(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateOffer(validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, db.Create(&cartItemRow{CartID: 1, OfferID: created.ID, Qty: 2}).Error)

	err = svc.DeleteOffer(created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOfferInUse)

	// Offer survives the refused delete.
	got, err := svc.GetOffer(created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
