package database

import (
	"fmt"
	"testing"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeedPopulatesEmptyTables(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	var menu []models.MenuItem
	require.NoError(t, db.Order("id asc").Find(&menu).Error)
	assert.Len(t, menu, 10)
	assert.Equal(t, "Cappuccino", menu[0].Name)
	assert.True(t, menu[0].Price.Equal(decimal.RequireFromString("3.50")))

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@shegacafe.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(DemoPassword)))

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var menu, users int64
	db.Model(&models.MenuItem{}).Count(&menu)
	db.Model(&models.User{}).Count(&users)
	assert.EqualValues(t, 10, menu)
	assert.EqualValues(t, 4, users)
}
