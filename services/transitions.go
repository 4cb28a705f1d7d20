package services

import (
	"fmt"

	"github.com/shegacafe/cafe-app/models"
)

// pipeline position of every non-cancelled status
var stage = map[models.OrderStatus]int{
	models.StatusReceived:   0,
	models.StatusSentToChef: 1,
	models.StatusPreparing:  2,
	models.StatusReady:      3,
	models.StatusDelivered:  4,
}

type move struct {
	from, to models.OrderStatus
}

var waiterMoves = map[move]bool{
	{models.StatusReceived, models.StatusSentToChef}: true,
	{models.StatusReady, models.StatusDelivered}:     true,
}

var chefMoves = map[move]bool{
	{models.StatusSentToChef, models.StatusPreparing}: true,
	{models.StatusSentToChef, models.StatusReady}:     true,
	{models.StatusPreparing, models.StatusReady}:      true,
}

// legalMove reports whether the status graph allows from -> to at all.
// Forward only, skipping allowed, Cancelled from anything non-terminal.
func legalMove(from, to models.OrderStatus) bool {
	if from.Terminal() || from == to {
		return false
	}
	if to == models.StatusCancelled {
		return true
	}
	f, okFrom := stage[from]
	t, okTo := stage[to]
	return okFrom && okTo && t > f
}

func roleAllows(role models.Role, from, to models.OrderStatus) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleWaiter:
		return to == models.StatusCancelled || waiterMoves[move{from, to}]
	case models.RoleChef:
		return chefMoves[move{from, to}]
	}
	return false
}

// CheckTransition validates a status change for the given role.
// Graph violations are ErrInvalidTransition, legal moves the role may not
// make are ErrForbidden.
func CheckTransition(role models.Role, from, to models.OrderStatus) error {
	if !legalMove(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if !roleAllows(role, from, to) {
		return fmt.Errorf("%w: %s may not move an order from %s to %s", ErrForbidden, role, from, to)
	}
	return nil
}

// NextStatuses lists the statuses the role may move an order to from its
// current status, in pipeline order.
func NextStatuses(role models.Role, from models.OrderStatus) []models.OrderStatus {
	var out []models.OrderStatus
	for _, to := range models.OrderStatuses {
		if legalMove(from, to) && roleAllows(role, from, to) {
			out = append(out, to)
		}
	}
	return out
}

// CheckPaymentTransition allows Pending -> Paid only. Re-applying the
// current status is reported as a no-op rather than an error.
func CheckPaymentTransition(from, to models.PaymentStatus) (noop bool, err error) {
	if from == to {
		return true, nil
	}
	if from == models.PaymentPending && to == models.PaymentPaid {
		return false, nil
	}
	return false, fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, from, to)
}
