// internal/interfaces/http/handlers/cart_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-backend/internal/config"
	"github.com/your-org/ticketing-backend/internal/domain/cart"
	"github.com/your-org/ticketing-backend/internal/domain/offer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type cartResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func newCartRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&offer.Offer{}, &cart.Cart{}, &cart.CartItem{}))

	handler := NewCartHandler(db, &config.Config{})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		// Stand-in for the JWT middleware.
		c.Set("user_id", "user-1")
	})
	r.GET("/cart", handler.GetCart)
	r.GET("/cart/count", handler.GetCartCount)
	r.POST("/cart/items", handler.AddToCart)
	r.PUT("/cart/items/:id", handler.UpdateCartItem)
	r.DELETE("/cart/items/:id", handler.RemoveFromCart)

	return r, db
}

func seedHandlerOffer(t *testing.T, db *gorm.DB, tickets int) *offer.Offer {
	t.Helper()
	o := &offer.Offer{
		Name:        "Offre Duo",
		Description: "Deux billets",
		ImageURL:    "https://example.com/duo.jpg",
		Price:       decimal.RequireFromString("90.00"),
		TicketCount: tickets,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartEndpoint(t *testing.T) {
	r, db := newCartRouter(t)
	o := seedHandlerOffer(t, db, 60)

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{
		"offer_id": o.ID,
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "L'offre a été ajoutée au panier.", resp.Message)
}

func TestAddToCartEndpointBusinessRefusal(t *testing.T) {
	r, db := newCartRouter(t)
	o := seedHandlerOffer(t, db, 3)

	// A refused mutation still answers 200; the success flag and the
	// user-facing message carry the outcome.
	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{
		"offer_id": o.ID,
		"quantity": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Vous ne pouvez pas ajouter plus de billets. Quantité disponible : 3", resp.Message)
}

func TestAddToCartEndpointRejectsMalformedBody(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"offer_id": "not-a-number"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemEndpoint(t *testing.T) {
	r, db := newCartRouter(t)
	o := seedHandlerOffer(t, db, 60)

	doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"offer_id": o.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodPut, "/cart/items/1", gin.H{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "La quantité a été mise à jour.", resp.Message)
}

func TestRemoveFromCartEndpoint(t *testing.T) {
	r, db := newCartRouter(t)
	o := seedHandlerOffer(t, db, 60)

	doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"offer_id": o.ID, "quantity": 2})

	w := doJSON(t, r, http.MethodDelete, "/cart/items/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "L'offre a été réduite de 1 ou supprimée du panier.", resp.Message)
}

func TestGetCartCountEndpoint(t *testing.T) {
	r, db := newCartRouter(t)
	o := seedHandlerOffer(t, db, 60)

	doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"offer_id": o.ID, "quantity": 3})

	w := doJSON(t, r, http.MethodGet, "/cart/count", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.Count)
}

func TestGetCartEndpointEmpty(t *testing.T) {
	r, _ := newCartRouter(t)

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items     []json.RawMessage `json:"items"`
			ItemCount int               `json:"item_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Items)
	assert.Equal(t, 0, resp.Data.ItemCount)
}
