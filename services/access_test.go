package services

import (
	"context"
	"testing"
	"time"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCaller(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	token, err := utils.GenerateToken(waiter.UserID, "Waiter", "Alex")
	require.NoError(t, err)
	assert.Equal(t, waiter, ResolveCaller(ctx, db, token))

	assert.Equal(t, models.Anonymous, ResolveCaller(ctx, db, ""))
	assert.Equal(t, models.Anonymous, ResolveCaller(ctx, db, "not-a-jwt"))

	ghost, err := utils.GenerateToken(404, "Admin", "Ghost")
	require.NoError(t, err)
	assert.Equal(t, models.Anonymous, ResolveCaller(ctx, db, ghost))
}

func TestResolveCallerReadsRoleFromDatabase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// legacy upper-case role, token still claims Customer
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", customer.UserID).Update("role", "ADMIN").Error)
	token, err := utils.GenerateToken(customer.UserID, "Customer", "John Doe")
	require.NoError(t, err)

	caller := ResolveCaller(ctx, db, token)
	assert.Equal(t, models.RoleAdmin, caller.Role)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", customer.UserID).Update("role", "USER").Error)
	assert.Equal(t, models.RoleCustomer, ResolveCaller(ctx, db, token).Role)
}

func TestResolveCallerRevokedToken(t *testing.T) {
	db := setupTestDB(t)
	token, err := utils.GenerateToken(admin.UserID, "Admin", "Admin User")
	require.NoError(t, err)

	utils.RevokeToken(token, time.Now().Add(time.Hour))
	assert.True(t, ResolveCaller(context.Background(), db, token).IsAnonymous())
}

func TestRequireRole(t *testing.T) {
	assert.ErrorIs(t, RequireRole(models.Anonymous, models.RoleAdmin), ErrUnauthorized)
	assert.ErrorIs(t, RequireRole(chef, models.RoleAdmin, models.RoleWaiter), ErrForbidden)
	assert.NoError(t, RequireRole(chef, models.RoleAdmin, models.RoleChef))
}
