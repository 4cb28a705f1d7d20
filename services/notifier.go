package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
	"github.com/sirupsen/logrus"
)

type EventType string

const (
	EventOrderCreated   EventType = "order.created"
	EventStatusChanged  EventType = "order.status_changed"
	EventPaymentChanged EventType = "order.payment_changed"
	EventOrdersCleared  EventType = "orders.cleared"
)

const notifyTimeout = 5 * time.Second

// OrderEvent is published after a successful order mutation.
type OrderEvent struct {
	Type          EventType            `json:"type"`
	OrderID       uint                 `json:"order_id,omitempty"`
	Status        models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"payment_status,omitempty"`
	TableNumber   string               `json:"table_number,omitempty"`
	Cleared       int64                `json:"cleared,omitempty"`
	At            time.Time            `json:"at"`
}

func orderEvent(t EventType, o *models.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          t,
		OrderID:       o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TableNumber:   o.TableNumber,
		At:            at,
	}
}

// Notifier receives order events. Delivery is advisory: an error is
// logged and never undoes the change that produced the event.
type Notifier interface {
	Notify(ctx context.Context, ev OrderEvent) error
}

// LogNotifier writes every event to the info log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ev OrderEvent) error {
	utils.InfoLogger.WithFields(logrus.Fields{
		"event":          ev.Type,
		"order_id":       ev.OrderID,
		"status":         ev.Status,
		"payment_status": ev.PaymentStatus,
		"table":          ev.TableNumber,
	}).Info("order event")
	return nil
}

// MultiNotifier fans an event out to every sink and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, ev OrderEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dispatcher runs notifications off the request path.
type dispatcher struct {
	notifier Notifier
	wg       sync.WaitGroup
}

func (d *dispatcher) dispatch(ev OrderEvent) {
	if d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := d.notifier.Notify(ctx, ev); err != nil {
			utils.ErrorLogger.WithError(err).WithFields(logrus.Fields{
				"event":    ev.Type,
				"order_id": ev.OrderID,
			}).Error("order notification failed")
		}
	}()
}

// wait blocks until all in-flight notifications have finished.
func (d *dispatcher) wait() {
	d.wg.Wait()
}
