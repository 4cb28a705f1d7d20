package services

import (
	"testing"

	"github.com/shegacafe/cafe-app/models"
	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		role     models.Role
		from, to models.OrderStatus
		want     error
	}{
		{models.RoleWaiter, models.StatusReceived, models.StatusSentToChef, nil},
		{models.RoleWaiter, models.StatusReady, models.StatusDelivered, nil},
		{models.RoleWaiter, models.StatusPreparing, models.StatusCancelled, nil},
		{models.RoleWaiter, models.StatusSentToChef, models.StatusPreparing, ErrForbidden},
		{models.RoleChef, models.StatusSentToChef, models.StatusPreparing, nil},
		{models.RoleChef, models.StatusSentToChef, models.StatusReady, nil},
		{models.RoleChef, models.StatusPreparing, models.StatusReady, nil},
		{models.RoleChef, models.StatusReady, models.StatusDelivered, ErrForbidden},
		{models.RoleChef, models.StatusPreparing, models.StatusCancelled, ErrForbidden},
		{models.RoleAdmin, models.StatusReceived, models.StatusDelivered, nil},
		{models.RoleAdmin, models.StatusReady, models.StatusCancelled, nil},
		{models.RoleAdmin, models.StatusReady, models.StatusPreparing, ErrInvalidTransition},
		{models.RoleAdmin, models.StatusReady, models.StatusReady, ErrInvalidTransition},
		{models.RoleAdmin, models.StatusDelivered, models.StatusCancelled, ErrInvalidTransition},
		{models.RoleAdmin, models.StatusCancelled, models.StatusReceived, ErrInvalidTransition},
		{models.RoleCustomer, models.StatusReceived, models.StatusCancelled, ErrForbidden},
	}
	for _, tt := range tests {
		err := CheckTransition(tt.role, tt.from, tt.to)
		if tt.want == nil {
			assert.NoError(t, err, "%s: %s -> %s", tt.role, tt.from, tt.to)
		} else {
			assert.ErrorIs(t, err, tt.want, "%s: %s -> %s", tt.role, tt.from, tt.to)
		}
	}
}

func TestNoTransitionLeavesTerminal(t *testing.T) {
	roles := []models.Role{models.RoleAdmin, models.RoleWaiter, models.RoleChef, models.RoleCustomer}
	for _, role := range roles {
		for _, from := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
			assert.Empty(t, NextStatuses(role, from), "%s from %s", role, from)
			for _, to := range models.OrderStatuses {
				assert.Error(t, CheckTransition(role, from, to))
			}
		}
	}
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t,
		[]models.OrderStatus{models.StatusSentToChef, models.StatusCancelled},
		NextStatuses(models.RoleWaiter, models.StatusReceived))
	assert.Equal(t,
		[]models.OrderStatus{models.StatusPreparing, models.StatusReady},
		NextStatuses(models.RoleChef, models.StatusSentToChef))
	assert.Equal(t,
		[]models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusDelivered, models.StatusCancelled},
		NextStatuses(models.RoleAdmin, models.StatusSentToChef))
}

func TestCheckPaymentTransition(t *testing.T) {
	noop, err := CheckPaymentTransition(models.PaymentPending, models.PaymentPaid)
	assert.NoError(t, err)
	assert.False(t, noop)

	noop, err = CheckPaymentTransition(models.PaymentPaid, models.PaymentPaid)
	assert.NoError(t, err)
	assert.True(t, noop)

	_, err = CheckPaymentTransition(models.PaymentPaid, models.PaymentPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
