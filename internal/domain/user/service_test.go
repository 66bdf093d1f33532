// internal/domain/user/service_test.go
package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/ticketing-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Profile{}))
	return NewService(db, &config.Config{})
}

func TestGetProfileNilWhenAbsent(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.GetProfile("user-1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpsertProfileCreatesThenUpdates(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.UpsertProfile("user-1", &UpsertProfileRequest{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Martin",
		City:      "Paris",
		Country:   "France",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Martin", created.FullName())

	updated, err := svc.UpsertProfile("user-1", &UpsertProfileRequest{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Durand",
		City:      "Lyon",
		Country:   "France",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Durand", updated.LastName)
	assert.Equal(t, "Lyon", updated.City)

	p, err := svc.GetProfile("user-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Lyon", p.City)
}
